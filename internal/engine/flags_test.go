package engine

import (
	"testing"
	"time"
)

func TestOutboxDrainPreservesOrder(t *testing.T) {
	var out Outbox

	out.Send(SoundTrigger{Name: "button-press"})
	out.Send(SwitchLevel{Index: 2})
	out.Send(UpdateLevelStart{At: time.Unix(0, 0)})

	if out.Len() != 3 {
		t.Fatalf("Len() = %d, expected 3", out.Len())
	}

	flags := out.Drain()
	if len(flags) != 3 {
		t.Fatalf("Drain() returned %d flags, expected 3", len(flags))
	}
	if _, ok := flags[0].(SoundTrigger); !ok {
		t.Errorf("flags[0] = %v, expected SoundTrigger", flags[0])
	}
	if f, ok := flags[1].(SwitchLevel); !ok || f.Index != 2 {
		t.Errorf("flags[1] = %v, expected SwitchLevel(2)", flags[1])
	}

	if out.Len() != 0 || len(out.Drain()) != 0 {
		t.Error("Drain() should empty the outbox")
	}
}

func TestFlagStrings(t *testing.T) {
	tests := []struct {
		flag ControlFlag
		want string
	}{
		{Quit{}, "Quit"},
		{SwitchLevel{Index: 1}, "SwitchLevel(1)"},
		{SaveProgress{}, "SaveProgress"},
		{MaybeUpdateHighScore{Level: 0, Time: 90 * time.Second}, "MaybeUpdateHighScore(0, 1m30s)"},
		{SoundTrigger{Name: "death"}, `SoundTrigger("death")`},
		{SetVolume{Volume: 0.5}, "SetVolume(0.50)"},
	}

	for _, tt := range tests {
		if got := tt.flag.String(); got != tt.want {
			t.Errorf("String() = %q, expected %q", got, tt.want)
		}
	}
}
