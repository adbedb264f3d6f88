package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Adaptive color definitions
	colorHeader = lipgloss.CompleteAdaptiveColor{
		Dark:  lipgloss.CompleteColor{TrueColor: "#00af87", ANSI256: "36", ANSI: "6"},
		Light: lipgloss.CompleteColor{TrueColor: "#008756", ANSI256: "29", ANSI: "6"},
	}
	colorPath = lipgloss.CompleteAdaptiveColor{
		Dark:  lipgloss.CompleteColor{TrueColor: "#5f87ff", ANSI256: "69", ANSI: "4"},
		Light: lipgloss.CompleteColor{TrueColor: "#0000af", ANSI256: "19", ANSI: "4"},
	}
	colorScore = lipgloss.CompleteAdaptiveColor{
		Dark:  lipgloss.CompleteColor{TrueColor: "#d7ff87", ANSI256: "192", ANSI: "11"},
		Light: lipgloss.CompleteColor{TrueColor: "#5f8700", ANSI256: "64", ANSI: "10"},
	}
	colorDim = lipgloss.CompleteAdaptiveColor{
		Dark:  lipgloss.CompleteColor{TrueColor: "#9e9e9e", ANSI256: "247", ANSI: "8"},
		Light: lipgloss.CompleteColor{TrueColor: "#444444", ANSI256: "238", ANSI: "0"},
	}

	// Exported styles shared by the commands
	StyleHeader = lipgloss.NewStyle().Bold(true).Foreground(colorHeader)
	StylePath   = lipgloss.NewStyle().Foreground(colorPath)
	StyleScore  = lipgloss.NewStyle().Foreground(colorScore)
	StyleDim    = lipgloss.NewStyle().Foreground(colorDim)
)

// shelveTheme returns the huh theme used by the interactive forms.
func shelveTheme() *huh.Theme {
	return huh.ThemeCatppuccin()
}

func shelveKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit.SetKeys("esc", "ctrl+c")
	km.Quit.SetHelp("ctrl+c", "quit")
	km.Input.Submit.SetHelp("enter", "submit • ctrl+c: quit")
	km.Confirm.Submit.SetHelp("enter", "confirm • ctrl+c: quit")
	km.Note.Submit.SetHelp("enter", "next • ctrl+c: quit")
	return km
}

// interceptedKey tracks the last key that triggered a form abort.
var interceptedKey string

// formFilter is a Bubble Tea filter that records which key aborted a
// form, so esc and ctrl+c can be told apart.
func formFilter(m tea.Model, msg tea.Msg) tea.Msg {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyEsc:
			interceptedKey = "esc"
		case tea.KeyCtrlC:
			interceptedKey = "ctrl+c"
		}
	}
	return msg
}

// RunForm runs a huh form with the abort-key filter installed.
func RunForm(f *huh.Form) error {
	interceptedKey = ""
	return f.WithProgramOptions(tea.WithFilter(formFilter)).Run()
}
