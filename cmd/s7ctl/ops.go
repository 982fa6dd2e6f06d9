package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the CPU run state",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := dial(cmd)
			if err != nil {
				return err
			}
			defer client.Close()
			status, err := client.GetPlcStatus()
			if err != nil {
				return err
			}
			fmt.Println(status)
			return nil
		},
	}
}

func newStartCmd() *cobra.Command {
	var cold bool

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Put the CPU into RUN (hot start, --cold for cold start)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := dial(cmd)
			if err != nil {
				return err
			}
			defer client.Close()
			if cold {
				return client.ColdStart()
			}
			return client.HotStart()
		},
	}
	cmd.Flags().BoolVar(&cold, "cold", false, "cold start, discards the process image")
	return cmd
}

func newStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Put the CPU into STOP",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := dial(cmd)
			if err != nil {
				return err
			}
			defer client.Close()
			return client.Stop()
		},
	}
}

func newClockCmd() *cobra.Command {
	var sync bool

	cmd := &cobra.Command{
		Use:   "clock",
		Short: "Show the PLC clock, --sync writes the host clock first",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := dial(cmd)
			if err != nil {
				return err
			}
			defer client.Close()
			if sync {
				if err := client.SetPlcSystemDateTime(); err != nil {
					return err
				}
			}
			t, err := client.GetPlcDateTime()
			if err != nil {
				return err
			}
			fmt.Println(t.Format("2006-01-02 15:04:05.000"))
			return nil
		},
	}
	cmd.Flags().BoolVar(&sync, "sync", false, "write the host clock to the PLC")
	return cmd
}

func newPasswordCmd() *cobra.Command {
	var set string
	var clear bool

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Set or clear the session password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (set == "") == !clear {
				return fmt.Errorf("use exactly one of --set or --clear")
			}
			client, err := dial(cmd)
			if err != nil {
				return err
			}
			defer client.Close()
			if clear {
				return client.ClearSessionPassword()
			}
			return client.SetSessionPassword(set)
		},
	}
	cmd.Flags().StringVar(&set, "set", "", "password to authenticate with (max 8 chars)")
	cmd.Flags().BoolVar(&clear, "clear", false, "drop the session authentication")
	return cmd
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show CPU identification and order code",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := dial(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			cpu, err := client.GetCpuInfo()
			if err != nil {
				return err
			}
			fmt.Printf("module:  %s\n", cpu.ModuleTypeName)
			fmt.Printf("name:    %s\n", cpu.ModuleName)
			fmt.Printf("as name: %s\n", cpu.ASName)
			fmt.Printf("serial:  %s\n", cpu.SerialNumber)

			order, err := client.GetOrderCode()
			if err != nil {
				return err
			}
			fmt.Printf("order:   %s v%d.%d.%d\n", order.Code, order.V1, order.V2, order.V3)
			return nil
		},
	}
}

func newSzlCmd() *cobra.Command {
	var id, index uint16

	cmd := &cobra.Command{
		Use:     "szl",
		Short:   "Dump a raw System State List entry",
		Example: `  s7ctl szl --host 192.168.0.1 --id 0x0011`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := dial(cmd)
			if err != nil {
				return err
			}
			defer client.Close()
			szl, err := client.ReadSZL(id, index, 4096)
			if err != nil {
				return err
			}
			fmt.Printf("records: %d, header length: %d, data size: %d\n",
				szl.NDR, szl.LenHdr, szl.DataSize())
			fmt.Println(hex.EncodeToString(szl.Data))
			return nil
		},
	}
	cmd.Flags().Uint16Var(&id, "id", 0x0011, "SZL ID")
	cmd.Flags().Uint16Var(&index, "index", 0, "SZL index")
	return cmd
}
