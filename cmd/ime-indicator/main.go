// ime-indicator показывает язык активной раскладки клавиатуры иконкой в трее.
//
// Иконка перерисовывается при смене активного окна и после отпускания
// клавиши Win, цвет глифа следует светлой или тёмной теме Windows.
package main

import (
	"os"
)

// Version устанавливается при сборке через -ldflags.
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
