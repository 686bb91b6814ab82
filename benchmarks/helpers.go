// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/greaheisl/relaybox"
	"github.com/greaheisl/relaybox/internal/scenario"
)

// GenJoinTree creates a task that forks into 2^depth leaves, each yielding
// n times.
func GenJoinTree(depth, n int) relaybox.Future[relaybox.Unit] {
	if depth <= 0 {
		return relaybox.Task(func(co *relaybox.Co) {
			for range n {
				co.Yield()
			}
		})
	}
	return relaybox.Task(func(co *relaybox.Co) {
		relaybox.Await(co, relaybox.Join2(GenJoinTree(depth-1, n), GenJoinTree(depth-1, n)))
	})
}

var tapButtons = []string{"prev", "next", "enter", "prev+next"}

// GenTapScenario creates a scenario with n short taps, 500ms apart.
func GenTapScenario(n int) *scenario.Scenario {
	b := scenario.New(fmt.Sprintf("taps_%d", n)).Release(0)
	for i := range n {
		at := relaybox.FromAbsolute(uint32(500 * (i + 1)))
		b.Tap(at, 100, tapButtons[i%len(tapButtons)])
	}
	return b.Until(relaybox.FromAbsolute(uint32(500 * (n + 2)))).MustBuild()
}

// GenTapScenarioYAML is GenTapScenario as a YAML document.
func GenTapScenarioYAML(n int) ([]byte, error) {
	doc := map[string]any{
		"name":  fmt.Sprintf("taps_%d", n),
		"until": 500 * (n + 2),
	}
	readings := []map[string]any{{"at": 0, "buttons": []string{}}}
	for i := range n {
		at := 500 * (i + 1)
		readings = append(readings,
			map[string]any{"at": at, "buttons": tapButtons[i%len(tapButtons)]},
			map[string]any{"at": at + 100, "buttons": []string{}},
		)
	}
	doc["readings"] = readings
	return yaml.Marshal(doc)
}
