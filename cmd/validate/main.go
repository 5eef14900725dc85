// Command validate runs a saved Nobil search response through the
// normalizer and reports decode statistics: malformed records, rejected
// stations, and a connector type/power histogram. Useful for checking a new
// data dump before pointing the service at it.
//
// Usage:
//
//	go run ./cmd/validate -input dump.json
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/robho/nobil-etl-service/internal/nobil"
)

func main() {
	input := flag.String("input", "", "path to a Nobil search response JSON file")
	license := flag.String("license", "validation run", "data license tag to stamp on normalized stations")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*input, *license); code != 0 {
		os.Exit(code)
	}
}

func run(inputPath, license string) int {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		return 1
	}

	var payload nobil.ResponseData
	if err := json.Unmarshal(data, &payload); err != nil {
		fmt.Fprintf(os.Stderr, "parse input: %v\n", err)
		return 1
	}
	if err := payload.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "response reports error: %v\n", err)
		return 1
	}

	var (
		normalized int
		rejected   int
		malformed  int
		histogram  = make(map[string]int)
	)

	for _, raw := range payload.ChargerStations {
		st, err := nobil.Normalize(raw, license, nil)
		if err != nil {
			if errors.Is(err, nobil.ErrMalformedCoordinate) {
				malformed++
				fmt.Printf("MALFORMED station %d: %v\n", raw.Data.ID, err)
				continue
			}
			fmt.Fprintf(os.Stderr, "unexpected error for station %d: %v\n", raw.Data.ID, err)
			return 1
		}
		if st == nil {
			rejected++
			continue
		}
		normalized++
		for _, c := range st.ConnectorsMerged() {
			label := c.Type
			if label == "" {
				label = "(unspecified)"
			}
			if p := c.FormatPower(); p != "" {
				label += " " + p
			}
			histogram[label] += c.Count
		}
	}

	fmt.Printf("\nrecords:    %d\n", len(payload.ChargerStations))
	fmt.Printf("normalized: %d\n", normalized)
	fmt.Printf("rejected:   %d\n", rejected)
	fmt.Printf("malformed:  %d\n", malformed)

	labels := make([]string, 0, len(histogram))
	for label := range histogram {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	fmt.Println("\nconnectors:")
	for _, label := range labels {
		fmt.Printf("  %5d × %s\n", histogram[label], label)
	}

	if malformed > 0 {
		return 2
	}
	return 0
}
