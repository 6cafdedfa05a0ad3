package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(topicsCmd)
}

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List every topic with its entry count",
	Args:  cobra.NoArgs,
	RunE:  runTopics,
}

// TopicCount pairs a topic with the number of entries carrying it.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

func runTopics(cmd *cobra.Command, args []string) error {
	st := mustOpenStore()
	defer st.Close()

	entries, err := st.ListAll()
	if err != nil {
		exitWithCoreError("reading entries", err)
	}

	counts := make(map[string]int)
	for _, e := range entries {
		for _, t := range e.Topics {
			counts[t]++
		}
	}

	topics := make([]TopicCount, 0, len(counts))
	for t, n := range counts {
		topics = append(topics, TopicCount{Topic: t, Count: n})
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Topic < topics[j].Topic })

	if humanOutput {
		for _, tc := range topics {
			fmt.Printf("%s (%d)\n", tc.Topic, tc.Count)
		}
	} else {
		outputJSON(topics)
	}
	return nil
}
