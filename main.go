/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package main

import (
	"github.com/josephgoksu/zettelwing/cmd"
	"github.com/josephgoksu/zettelwing/internal/logger"
)

func main() {
	defer logger.HandlePanic()
	logger.SetVersion(cmd.Version())
	cmd.Execute()
}
