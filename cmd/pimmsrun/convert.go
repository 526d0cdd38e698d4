package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newConvertCmd(a *app) *cobra.Command {
	rf := &requestFlags{}
	var (
		timeout time.Duration
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Run one flux conversion",
		Long: `Runs one PIMMS session for the given request and prints the predicted
conversion factor. With --json the full result is printed, including the
run id and the verbatim session transcript.

Example:
  pimmsrun convert --flux 1e-14 --mission xmm --detector pn --filter thin \
    --model powerlaw --par 2.0 --nh 1e22 --z 3.0 --galnh 1e20 \
    --from 0.5:2 --to 2:10`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := rf.request()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			res, err := a.driver.Convert(ctx, req)
			if err != nil {
				return err
			}

			if asJSON {
				data, err := json.MarshalIndent(res, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal result: %w", err)
				}
				cmd.Println(string(data))
				return nil
			}
			cmd.Println(strconv.FormatFloat(res.Value, 'g', -1, 64))
			return nil
		},
	}

	rf.register(cmd)
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "kill the tool after this duration (0 = no timeout)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	return cmd
}
