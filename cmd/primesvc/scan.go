package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"primesvc/internal/primes"
)

var scanCmd = &cobra.Command{
	Use:   "scan START END",
	Short: "Print the primes in [START, END] without starting a server",
	Long: `Scan an inclusive range locally and print the result as the
server would return it.

Examples:
  primesvc scan 1 10     # [1,2,3,5,7]
  primesvc scan 20 10    # []`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := parseBound("START", args[0])
		if err != nil {
			return err
		}
		end, err := parseBound("END", args[1])
		if err != nil {
			return err
		}
		return writeScan(cmd.OutOrStdout(), start, end)
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func parseBound(name, s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer in [0, 4294967295]: %q", name, s)
	}
	return uint32(v), nil
}

func writeScan(w io.Writer, start, end uint32) error {
	data, err := json.Marshal(primes.Scan(start, end))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
