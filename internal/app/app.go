package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"scorch/internal/config"
	"scorch/internal/services"
	"scorch/internal/state"
	"scorch/internal/ui"
)

func Run() {
	base := config.DefaultConfig()
	loaded, loadErr := config.LoadConfig()
	if loadErr == nil {
		base = loaded
	}
	cfg := config.ParseFlags(base)

	if cfg.Debug {
		logFile, err := tea.LogToFile("scorch-debug.log", "scorch")
		if err == nil {
			defer logFile.Close()
		}
	}

	scanner := services.NewFSScanner(cfg.Protect)
	remover := services.NewFSRemover()
	guard := services.NewDeletionGuard(scanner, remover)
	navigator := state.NewNavigator(scanner)

	model := ui.NewModel(cfg, scanner, guard, navigator)
	if loadErr != nil {
		model = model.WithStatus("Config warning: using defaults")
	}
	program := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := program.Run()
	if err != nil {
		fmt.Println("Scorch error:", err)
		return
	}
	if provider, ok := finalModel.(ui.ConfigProvider); ok {
		if err := config.SaveConfig(provider.ConfigSnapshot()); err != nil {
			fmt.Println("Scorch config save error:", err)
		}
	}
}
