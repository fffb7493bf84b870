package core

import "testing"

func TestKeyLatchHoldsForTicks(t *testing.T) {
	l := NewKeyLatch(3)
	l.Press(ActionUp)

	for tick := 1; tick <= 3; tick++ {
		f := NewInputFrame()
		l.Apply(&f)
		if !f.Has(ActionUp) {
			t.Fatalf("tick %d: Up should still be held", tick)
		}
	}

	f := NewInputFrame()
	l.Apply(&f)
	if f.Has(ActionUp) {
		t.Error("Up should be released after the hold expires")
	}
}

func TestKeyLatchRepeatRefreshes(t *testing.T) {
	l := NewKeyLatch(2)
	l.Press(ActionLeft)

	f := NewInputFrame()
	l.Apply(&f)
	l.Press(ActionLeft) // auto-repeat

	for tick := 0; tick < 2; tick++ {
		f := NewInputFrame()
		l.Apply(&f)
		if !f.Has(ActionLeft) {
			t.Fatalf("tick %d: repeat should refresh the hold", tick)
		}
	}
}

func TestKeyLatchOppositeCancels(t *testing.T) {
	l := NewKeyLatch(10)
	l.Press(ActionLeft)
	l.Press(ActionRight)

	f := NewInputFrame()
	l.Apply(&f)
	if f.Has(ActionLeft) || !f.Has(ActionRight) {
		t.Errorf("expected only Right held, got %v", f.Actions)
	}
}

func TestInputFrameClear(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionPause)
	f.Pointer = &Pointer{Col: 1, Row: 2, Start: true}
	f.Clear()

	if f.Has(ActionPause) || f.Pointer != nil {
		t.Error("Clear() should drop actions and pointer")
	}
}

func TestActionHeld(t *testing.T) {
	if !ActionAltDown.Held() || ActionConfirm.Held() {
		t.Error("only movement actions should be held")
	}
}
