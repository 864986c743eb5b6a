package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"porttariff/internal/domain"
	"porttariff/internal/dues"
	"porttariff/internal/service"
)

// vesselInputEnd terminates multi-line vessel input in the chat.
const vesselInputEnd = "END"

const chatHelp = `
📝 Available commands:
• 'input' - Input your vessel information
• 'calculate [due names]' - Calculate specific dues (e.g., 'calculate port dues, pilotage dues')
• 'calculate all' - Calculate all available dues
• 'available dues' - Show all available due types
• 'debug on/off' - Enable/disable debug mode
• 'help' - Show this help message
• 'quit' - Exit the chatbot`

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive port dues chatbot",
	Long: `Starts an interactive session. Paste vessel particulars with 'input',
then ask for dues with 'calculate pilotage', 'calculate all' and so on.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		s := newChatSession(app.Calculator, cmd.InOrStdin(), cmd.OutOrStdout())
		return s.run(cmd.Context())
	},
}

type chatSession struct {
	calculator service.CalculatorService
	in         *bufio.Scanner
	out        io.Writer

	vessel string
	debug  bool
}

func newChatSession(calculator service.CalculatorService, in io.Reader, out io.Writer) *chatSession {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	return &chatSession{calculator: calculator, in: scanner, out: out}
}

func (s *chatSession) run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	s.println(strings.Repeat("=", 60))
	s.println("🚢 Port Dues Calculator Chatbot")
	s.println(strings.Repeat("=", 60))
	s.println("👋 Hello! I can help you calculate port dues for vessels.")
	s.println(chatHelp)
	s.println("\n" + strings.Repeat("=", 60))

	for {
		fmt.Fprint(s.out, "\n💬 You: ")
		if !s.in.Scan() {
			s.println("\n\n👋 Goodbye! Have a great day!")
			return s.in.Err()
		}
		if done := s.handle(ctx, strings.ToLower(strings.TrimSpace(s.in.Text()))); done {
			return nil
		}
	}
}

// handle executes one command and reports whether the session should end.
func (s *chatSession) handle(ctx context.Context, input string) bool {
	switch {
	case input == "quit" || input == "exit" || input == "bye":
		s.println("👋 Goodbye! Have a great day!")
		return true
	case input == "help":
		s.println(chatHelp)
	case input == "debug on":
		s.debug = true
		s.bot("✅ Debug mode enabled - Will show detailed calculations")
	case input == "debug off":
		s.debug = false
		s.bot("✅ Debug mode disabled - Will show clean results only")
	case input == "available dues":
		s.bot(dues.Describe(domain.Catalog()))
	case input == "input":
		s.readVessel()
	case strings.HasPrefix(input, "calculate"):
		s.calculate(ctx, input)
	case input == "":
	default:
		s.bot("❓ I didn't understand that command. Type 'help' to see available commands.")
	}
	return false
}

func (s *chatSession) readVessel() {
	s.println("\n📋 Please paste your vessel data below.")
	s.println("When finished, type " + vesselInputEnd + " on its own line (or press Ctrl+D):")
	s.println(strings.Repeat("-", 50))

	var lines []string
	for s.in.Scan() {
		line := s.in.Text()
		if strings.TrimSpace(line) == vesselInputEnd {
			break
		}
		lines = append(lines, line)
	}

	data := strings.TrimSpace(strings.Join(lines, "\n"))
	if data == "" {
		s.bot("❌ No vessel data received. Please try again.")
		return
	}
	s.vessel = data
	s.bot("✅ Vessel data saved! You can now ask me to calculate specific dues.")
}

func (s *chatSession) calculate(ctx context.Context, input string) {
	resolution := s.calculator.ResolveRequest(input)
	if !resolution.Matched {
		s.bot(resolution.Message)
		return
	}

	names := domain.DueNames(resolution.Dues)
	s.bot("Calculating: " + strings.Join(names, ", "))

	if s.vessel == "" {
		s.bot("\n❌ Please provide vessel data first using the 'input' command.")
		return
	}

	text, err := s.calculator.CalculateText(ctx, s.vessel, names, s.debug)
	if err != nil {
		s.bot("❌ " + err.Error())
		return
	}
	s.bot("\n" + text)
}

func (s *chatSession) bot(msg string) {
	s.println("\n🤖 Bot: " + msg)
}

func (s *chatSession) println(msg string) {
	fmt.Fprintln(s.out, msg)
}
