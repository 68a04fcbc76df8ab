package graphio

import (
	"bufio"
	"fmt"
	"io"
	"sort"
)

// WriteVerdict writes the YES/NO line the CLI's stdout contract requires
// before any witness sequence.
func WriteVerdict(w io.Writer, reachable bool) error {
	if reachable {
		_, err := fmt.Fprintln(w, "a YES")
		return err
	}
	_, err := fmt.Fprintln(w, "a NO")
	return err
}

// WriteSequence writes one "a <elements>" line per configuration in the
// witness sequence, each set rendered in ascending order.
func WriteSequence(w io.Writer, sequence [][]int) error {
	bw := bufio.NewWriter(w)
	for _, set := range sequence {
		sorted := append([]int(nil), set...)
		sort.Ints(sorted)
		if _, err := fmt.Fprintf(bw, "a %s\n", FormatSet(sorted)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteEnumeration writes one line per member of an enumerated family
// (--enum), each a sorted, space-separated element list.
func WriteEnumeration(w io.Writer, members [][]int) error {
	bw := bufio.NewWriter(w)
	for _, m := range members {
		sorted := append([]int(nil), m...)
		sort.Ints(sorted)
		if _, err := fmt.Fprintln(bw, FormatSet(sorted)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
