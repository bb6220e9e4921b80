package hotkeys

import (
	"errors"
	"slices"
	"testing"
)

type recordingDispatcher struct {
	actions []string
	err     error
}

func (d *recordingDispatcher) Dispatch(action string) error {
	d.actions = append(d.actions, action)
	return d.err
}

func TestActionFunc_Dispatches(t *testing.T) {
	d := &recordingDispatcher{}
	actionFunc(d, "workspace:web")()
	actionFunc(d, "focus_next")()

	if want := []string{"workspace:web", "focus_next"}; !slices.Equal(d.actions, want) {
		t.Fatalf("actions = %v, want %v", d.actions, want)
	}
}

func TestActionFunc_ErrorIsNotFatal(t *testing.T) {
	d := &recordingDispatcher{err: errors.New("no workspace")}
	actionFunc(d, "focus_next")()
	if len(d.actions) != 1 {
		t.Fatalf("expected dispatch despite error")
	}
}

func TestSortedKeys(t *testing.T) {
	got := sortedKeys(map[string]string{"Mod4-k": "focus_previous", "Mod4-1": "workspace:one", "Mod4-j": "focus_next"})
	if want := []string{"Mod4-1", "Mod4-j", "Mod4-k"}; !slices.Equal(got, want) {
		t.Fatalf("sortedKeys = %v, want %v", got, want)
	}
}

func TestRegisterBindings_RequiresX11(t *testing.T) {
	h := NewHandler(nil, &recordingDispatcher{})
	if err := h.RegisterBindings(map[string]string{"Mod4-j": "focus_next"}); err == nil {
		t.Fatalf("expected error without an X11 backend")
	}
	h.Reset()
}
