package main

import (
	"github.com/spf13/cobra"
)

func main() {
	var root = &cobra.Command{Use: "weekender"}

	root.AddCommand(planCMD(), serveCMD(), migrateCMD())
	_ = root.Execute()
}
