package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

type readFlags struct {
	area   string
	db     int
	start  int
	amount int
	typ    string
}

func newReadCmd() *cobra.Command {
	rf := &readFlags{}

	cmd := &cobra.Command{
		Use:     "read",
		Short:   "Read a data area",
		Example: `  s7ctl read --host 192.168.0.1 --area db --db 1 --start 0 --amount 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			area, err := areaFromString(rf.area)
			if err != nil {
				return err
			}
			typ, err := typeFromString(rf.typ)
			if err != nil {
				return err
			}
			client, err := dial(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			buf := make([]byte, rf.amount*typ.ByteLength())
			if err := client.ReadArea(area, rf.db, rf.start, rf.amount, typ, buf); err != nil {
				return err
			}
			fmt.Println(hex.EncodeToString(buf))
			return nil
		},
	}
	cmd.Flags().StringVar(&rf.area, "area", "db", "area: db, mk, input, output, counter, timer")
	cmd.Flags().IntVar(&rf.db, "db", 0, "DB number for --area db")
	cmd.Flags().IntVar(&rf.start, "start", 0, "start address in the area's native unit")
	cmd.Flags().IntVar(&rf.amount, "amount", 1, "element count")
	cmd.Flags().StringVar(&rf.typ, "data-type", "byte", "element type: bit, byte, word, int, dword, dint, real, counter, timer")
	return cmd
}

type writeFlags struct {
	readFlags
	data string
}

func newWriteCmd() *cobra.Command {
	wf := &writeFlags{}

	cmd := &cobra.Command{
		Use:     "write",
		Short:   "Write a data area",
		Example: `  s7ctl write --host 192.168.0.1 --area db --db 1 --start 0 --amount 2 --data beef`,
		RunE: func(cmd *cobra.Command, args []string) error {
			area, err := areaFromString(wf.area)
			if err != nil {
				return err
			}
			typ, err := typeFromString(wf.typ)
			if err != nil {
				return err
			}
			data, err := hex.DecodeString(wf.data)
			if err != nil {
				return fmt.Errorf("--data must be hex: %w", err)
			}
			client, err := dial(cmd)
			if err != nil {
				return err
			}
			defer client.Close()
			return client.WriteArea(area, wf.db, wf.start, wf.amount, typ, data)
		},
	}
	cmd.Flags().StringVar(&wf.area, "area", "db", "area: db, mk, input, output, counter, timer")
	cmd.Flags().IntVar(&wf.db, "db", 0, "DB number for --area db")
	cmd.Flags().IntVar(&wf.start, "start", 0, "start address in the area's native unit")
	cmd.Flags().IntVar(&wf.amount, "amount", 1, "element count")
	cmd.Flags().StringVar(&wf.typ, "data-type", "byte", "element type: bit, byte, word, int, dword, dint, real, counter, timer")
	cmd.Flags().StringVar(&wf.data, "data", "", "payload as hex (required)")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}
