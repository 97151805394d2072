package main

import (
	"github.com/corray333/finance-dashboard/internal/app"
	"github.com/corray333/finance-dashboard/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
