package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jfmyers9/sequels/internal/config"
	"github.com/jfmyers9/sequels/pkg/audible"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Sign in to Audible",
	Long: `Sign in to Audible and store a reusable session.

This command will guide you through the sign-in process:
1. You'll be prompted for your Audible username (email) and password
2. If Audible challenges with a CAPTCHA, the image is opened in your
   browser and you type the answer at the prompt
3. The resulting session is saved to your config directory and reused
   by 'sequels check' until it expires`,
	RunE: runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)
}

func runAuth(cmd *cobra.Command, args []string) error {
	cfg, status := loadConfig()
	logger := newLogger()
	if status != config.StatusOK {
		logger.Warn().Stringer("status", status).Msg("Config not loaded, using defaults")
	}

	client, err := audible.NewClient(audible.Config{
		Region:      cfg.Audible.Region,
		SessionFile: cfg.Audible.SessionFile,
	})
	if err != nil {
		return err
	}

	if err := interactiveLogin(cmd.Context(), client); err != nil {
		return err
	}

	fmt.Printf("\n✓ Signed in successfully!\n")
	fmt.Printf("✓ Session saved to %s\n", cfg.Audible.SessionFile)
	fmt.Println("\nYou can now run 'sequels check'.")
	return nil
}

// loadConfig loads configuration honoring the --config flag.
func loadConfig() (*config.Config, config.LoadStatus) {
	if rootConfig != "" {
		return config.LoadFrom(rootConfig)
	}
	return config.Load()
}

// interactiveLogin collects credentials from the terminal, runs the
// sign-in flow (including any CAPTCHA challenge) and persists the
// resulting session.
func interactiveLogin(ctx context.Context, client *audible.Client) error {
	if ctx == nil {
		ctx = context.Background()
	}
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Username (email): ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}
	username = strings.TrimSpace(username)

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	if username == "" || len(password) == 0 {
		return fmt.Errorf("username and password are required")
	}

	session, err := client.Auth().Login(ctx, username, string(password), promptCaptcha(reader))
	if err != nil {
		return fmt.Errorf("sign-in failed: %w", err)
	}

	if err := client.Auth().SaveSession(session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// promptCaptcha returns a CaptchaFunc that best-effort opens the
// challenge image in a browser and reads the answer from the terminal.
func promptCaptcha(reader *bufio.Reader) audible.CaptchaFunc {
	return func(imageURL string) (string, error) {
		openInBrowser(imageURL)

		fmt.Printf("CAPTCHA %s : ", imageURL)
		answer, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read captcha answer: %w", err)
		}
		return strings.TrimSpace(answer), nil
	}
}

// openInBrowser tries to open a URL with the platform opener. Failure
// is fine; the URL is printed at the prompt anyway.
func openInBrowser(url string) {
	var name string
	switch runtime.GOOS {
	case "darwin":
		name = "open"
	case "windows":
		name = "rundll32"
	default:
		name = "xdg-open"
	}

	args := []string{url}
	if name == "rundll32" {
		args = []string{"url.dll,FileProtocolHandler", url}
	}
	_ = exec.Command(name, args...).Start()
}
