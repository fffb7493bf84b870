package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-arcade/internal/progress"
	"github.com/vovakirdan/neon-arcade/internal/storage"
)

var (
	flagHistory     int
	flagLeaderboard bool
)

var statsCmd = &cobra.Command{
	Use:   "stats [player]",
	Short: "Show player stats, achievements and the leaderboard",
	Long: `Display cumulative stats, rank and achievement progress for a player.
Defaults to the --player name.

Examples:
  arcade stats
  arcade stats ada --history 5
  arcade stats --leaderboard`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagHistory, "history", 10, "Number of recent games to show")
	statsCmd.Flags().BoolVar(&flagLeaderboard, "leaderboard", false, "Show the player leaderboard instead")
}

var (
	statsTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
	statsLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	statsDone  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	statsTodo  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func runStats(_ *cobra.Command, args []string) error {
	player := flagPlayer
	if len(args) == 1 {
		player = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagLeaderboard {
		return printLeaderboard(store)
	}

	stats, err := store.PlayerStats(player)
	if err != nil {
		return err
	}
	unlocked, err := store.Achievements(player)
	if err != nil {
		return err
	}
	history, err := store.History(player, flagHistory)
	if err != nil {
		return err
	}

	fmt.Println(statsTitle.Render("Player " + player))
	fmt.Println()

	lvl := progress.LevelFor(stats.XP)
	row := func(label, value string) {
		fmt.Println(statsLabel.Render(label) + value)
	}
	row("Rank", fmt.Sprintf("%s (level %d)", stats.Rank(), lvl.Level))
	row("XP", fmt.Sprintf("%d (%d/%d to next level)", stats.XP, lvl.CurrentXP, lvl.NextLevelXP))
	row("Games", fmt.Sprintf("%d  (%d W / %d L, %.0f%%)", stats.TotalGames, stats.Wins, stats.Losses, stats.WinRate()))
	row("Streak", fmt.Sprintf("%d (best %d)", stats.WinStreak, stats.BestStreak))
	row("Best rally", fmt.Sprintf("%d", stats.BestRally))
	if stats.FastestWin > 0 {
		row("Fastest win", stats.FastestWin.Round(time.Second).String())
	}
	row("Play time", stats.PlayTime.Round(time.Second).String())

	fmt.Println()
	fmt.Println(statsTitle.Render("Achievements"))
	have := make(map[int]time.Time, len(unlocked))
	for _, u := range unlocked {
		have[u.Achievement.ID] = u.UnlockedAt
	}
	for _, a := range progress.Achievements {
		if at, ok := have[a.ID]; ok {
			fmt.Println(statsDone.Render(fmt.Sprintf("  [x] %-16s %s", a.Name, at.Format("2006-01-02"))))
			continue
		}
		fmt.Println(statsTodo.Render(fmt.Sprintf("  [ ] %-16s %s (%d/%d)", a.Name, a.Description, a.Progress(stats), a.Max)))
	}

	if len(history) > 0 {
		fmt.Println()
		fmt.Println(statsTitle.Render("Recent games"))
		for _, r := range history {
			fmt.Println("  " + describeResult(r))
		}
	}
	return nil
}

func describeResult(r storage.GameResult) string {
	o := r.Outcome
	var b strings.Builder
	b.WriteString(r.CreatedAt.Format("Jan 02 15:04"))
	b.WriteString("  ")
	switch {
	case o.GameID == "arkanoid":
		fmt.Fprintf(&b, "%-12s score %d, level %d, %d bricks", o.GameID, o.Score, o.Level, o.BricksDestroyed)
	default:
		result := "lost"
		if o.Won {
			result = "won"
		}
		fmt.Fprintf(&b, "%-12s %s %d-%d", o.GameID, result, o.Score, o.OpponentScore)
	}
	if o.XP > 0 && !o.Shared {
		fmt.Fprintf(&b, "  +%d XP", o.XP)
	}
	return b.String()
}

func printLeaderboard(store *storage.Store) error {
	board, err := store.Leaderboard(20)
	if err != nil {
		return err
	}

	fmt.Println(statsTitle.Render("Leaderboard"))
	fmt.Println()
	if len(board) == 0 {
		fmt.Println("No players yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-14s  %-14s  %-7s  %s\n", "Rank", "Player", "Level", "XP", "Win%")
	for i, e := range board {
		level := fmt.Sprintf("%d %s", e.Stats.Level(), e.Stats.Rank())
		fmt.Printf("  %-4d  %-14s  %-14s  %-7d  %.0f\n", i+1, e.Player, level, e.Stats.XP, e.Stats.WinRate())
	}
	return nil
}
