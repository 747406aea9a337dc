package example

import (
	"fmt"
	"sort"

	"github.com/ecordell/pubif/helpers"
)

// ExampleUsage demonstrates how build tooling can read the generated manifest
func ExampleUsage() {
	// Which declarations does each condition gate?
	byCondition := helpers.ByCondition(GatedRecords)
	conditions := make([]string, 0, len(byCondition))
	for cond := range byCondition {
		conditions = append(conditions, cond)
	}
	sort.Strings(conditions)
	for _, cond := range conditions {
		fmt.Printf("cfg(%s): %v\n", cond, byCondition[cond])
	}

	// Members that only become visible when the condition holds
	if config, ok := helpers.Find(GatedRecords, "Config"); ok {
		fmt.Printf("%s exposes %v under cfg(%s)\n", config.Name, config.Hidden(), config.Condition)
	}
}
