package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/BethCNC/dad-social-media-agent-sub000/client"
	"github.com/BethCNC/dad-social-media-agent-sub000/demo/tui"
	"github.com/BethCNC/dad-social-media-agent-sub000/wizard"
)

// Interactive terminal walkthrough of the content wizard. It drives the
// orchestrator in-process against the HTTP collaborators, so the backend
// (BACKEND_URL) must be running.
func main() {
	_ = godotenv.Load()

	backend := client.New("")
	orch := wizard.New(backend, backend, backend, backend, wizard.Options{})
	defer orch.Close()

	program := tea.NewProgram(tui.NewModel(orch))

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
