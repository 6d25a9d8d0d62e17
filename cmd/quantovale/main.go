package main

import (
	"quantovale/cmd/quantovale/commands"
	"quantovale/lib/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
