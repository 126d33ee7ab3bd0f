// Command adminview renders admin HTML fragments from module configs.
package main

import "github.com/goliatone/go-adminview/internal/cli"

func main() {
	cli.Execute()
}
