package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unkn0wn-root/cachestore"
	"github.com/unkn0wn-root/cachestore/internal/config"
)

func getCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print the value stored under KEY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, ok, err := a.store.Get(ctx(cmd), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%s: not found", args[0])
			}
			return a.print(v)
		},
	}
}

func setCmd(a *app) *cobra.Command {
	var ttl string
	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Store VALUE under KEY; VALUE is parsed as JSON, or kept as a string",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := config.ParseTTL(ttl)
			if err != nil {
				return err
			}
			stored, err := a.store.Set(ctx(cmd), args[0], parseValue(args[1]), d)
			if err != nil {
				return err
			}
			if a.cfg.Codec == "json" {
				_, err = fmt.Fprintln(a.out, stored)
				return err
			}
			_, err = fmt.Fprintf(a.out, "OK (%d bytes)\n", len(stored))
			return err
		},
	}
	cmd.Flags().StringVar(&ttl, "expire", "", `ttl for this entry ("" = default, "never" = no expiry)`)
	return cmd
}

func delCmd(a *app) *cobra.Command {
	var literal bool
	cmd := &cobra.Command{
		Use:   "del KEY",
		Short: "Delete KEY; glob characters (*, ?, [..]) match several entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if literal {
				key = cachestore.EscapePattern(key)
			}
			return a.store.Del(ctx(cmd), key)
		},
	}
	cmd.Flags().BoolVar(&literal, "literal", false, "treat KEY literally")
	return cmd
}

func clearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every entry under the prefix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.store.Clear(ctx(cmd))
		},
	}
}

func scanCmd(a *app) *cobra.Command {
	var (
		cursor uint64
		count  int64
		all    bool
	)
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List entries one page at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for {
				page, err := a.store.Scan(ctx(cmd), cursor, count)
				if err != nil {
					return err
				}
				if !all {
					return a.print(page)
				}
				for _, e := range page.Entries {
					if err := a.print(e); err != nil {
						return err
					}
				}
				if cursor = page.Cursor; cursor == 0 {
					return nil
				}
			}
		},
	}
	cmd.Flags().Uint64Var(&cursor, "cursor", 0, "cursor returned by the previous page")
	cmd.Flags().Int64Var(&count, "count", 0, "page size hint (0 = configured scan-count)")
	cmd.Flags().BoolVar(&all, "all", false, "follow cursors to the end, one entry per line")
	return cmd
}

func (a *app) print(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, string(b))
	return err
}

func parseValue(s string) any {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	return v
}
