// Package headless runs dodger sessions without a terminal: scripted
// intents go in, a stream of snapshots comes out. It is used for replays,
// bots and regression runs.
package headless

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vovakirdan/dodger/internal/games/dodger"
)

// ScriptedIntent is an intent delivered at a point in session time.
type ScriptedIntent struct {
	At     time.Duration
	Intent dodger.Intent
}

// intentNames maps script tokens to intents. Single letters follow the
// keyboard layout.
var intentNames = map[string]dodger.Intent{
	"a":     dodger.IntentLeft,
	"left":  dodger.IntentLeft,
	"d":     dodger.IntentRight,
	"right": dodger.IntentRight,
	"w":     dodger.IntentJump,
	"jump":  dodger.IntentJump,
	"s":     dodger.IntentDuck,
	"duck":  dodger.IntentDuck,
}

// ParseScript parses a comma-separated list of intent@time entries, such as
// "w@0s,a@300ms,a@310ms". The result is ordered by time; entries with equal
// times keep their written order. An empty script is valid.
func ParseScript(s string) ([]ScriptedIntent, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	script := make([]ScriptedIntent, 0, len(parts))
	for i, part := range parts {
		name, at, ok := strings.Cut(strings.TrimSpace(part), "@")
		if !ok {
			return nil, fmt.Errorf("headless: script entry %d %q: want intent@time", i+1, part)
		}

		intent, ok := intentNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("headless: script entry %d: unknown intent %q", i+1, name)
		}

		d, err := time.ParseDuration(strings.TrimSpace(at))
		if err != nil {
			return nil, fmt.Errorf("headless: script entry %d: %w", i+1, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("headless: script entry %d: negative time %v", i+1, d)
		}

		script = append(script, ScriptedIntent{At: d, Intent: intent})
	}

	sort.SliceStable(script, func(i, j int) bool {
		return script[i].At < script[j].At
	})
	return script, nil
}
