package main

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"nanopub-go/core"
	"nanopub-go/pkg/profile"
)

func main() {
	rootCmd := &cobra.Command{Use: "np"}
	rootCmd.AddCommand(signCmd())
	rootCmd.AddCommand(publishCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(completionsCmd(rootCmd))
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func signCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign <file>",
		Short: "sign an unsigned nanopublication",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kPath, _ := cmd.Flags().GetString("key")
			pPath, _ := cmd.Flags().GetString("profile")
			priv, orcid, err := resolveKey(kPath, pPath)
			if err != nil {
				return fail(err)
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fail(wrapIo(err))
			}
			np, err := core.New(data)
			if err != nil {
				return fail(err)
			}
			if err := np.Sign(priv, orcid); err != nil {
				return fail(err)
			}

			out := core.SerializeTriG(np.DS, np.Info.URI, np.Info.NS)
			outPath := filepath.Join(filepath.Dir(args[0]), "signed."+filepath.Base(args[0]))
			if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
				return fail(wrapIo(err))
			}
			fmt.Println(outPath)
			return nil
		},
	}
	cmd.Flags().StringP("key", "k", "", "path to a private key file")
	cmd.Flags().StringP("profile", "p", "", "path to a profile YAML file")
	return cmd
}

func publishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish <file>",
		Short: "sign (if needed) and publish a nanopublication",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kPath, _ := cmd.Flags().GetString("key")
			pPath, _ := cmd.Flags().GetString("profile")
			useTest, _ := cmd.Flags().GetBool("test")

			priv, orcid, err := resolveKey(kPath, pPath)
			if err != nil {
				return fail(err)
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fail(wrapIo(err))
			}
			np, err := core.New(data)
			if err != nil {
				return fail(err)
			}

			server := core.GetServer(false, useTest)
			if err := np.Publish(context.Background(), http.DefaultClient, priv, orcid, server); err != nil {
				return fail(err)
			}
			fmt.Println(np.Info.Published)
			return nil
		},
	}
	cmd.Flags().StringP("key", "k", "", "path to a private key file")
	cmd.Flags().StringP("profile", "p", "", "path to a profile YAML file")
	cmd.Flags().BoolP("test", "t", false, "publish to the test server")
	return cmd
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "verify a nanopublication's Trusty hash and/or signature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fail(wrapIo(err))
			}
			np, err := core.New(data)
			if err != nil {
				return fail(err)
			}
			if err := np.Check(); err != nil {
				return fail(err)
			}
			fmt.Println("ok")
			return nil
		},
	}
}

func completionsCmd(root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:       "completions <shell>",
		Short:     "generate shell completions",
		Args:      cobra.ExactValidArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return root.GenBashCompletion(os.Stdout)
			case "zsh":
				return root.GenZshCompletion(os.Stdout)
			case "fish":
				return root.GenFishCompletion(os.Stdout, true)
			case "powershell":
				return root.GenPowerShellCompletion(os.Stdout)
			}
			return nil
		},
	}
}

// resolveKey loads a private key and the ORCID to attribute new
// signatures to, either directly from a key file or via a profile YAML
// file. With neither flag set it falls back to the default profile path.
func resolveKey(keyPath, profilePath string) (*rsa.PrivateKey, string, error) {
	if keyPath != "" {
		raw, err := os.ReadFile(keyPath)
		if err != nil {
			return nil, "", wrapIo(err)
		}
		normalized, err := core.NormalizeKey(string(raw))
		if err != nil {
			return nil, "", err
		}
		priv, err := core.ParsePrivateKey(normalized)
		return priv, "", err
	}

	prof, err := profile.Load(profilePath)
	if err != nil {
		return nil, "", err
	}
	priv, err := prof.PrivateKey()
	if err != nil {
		return nil, "", err
	}
	return priv, prof.OrcidID, nil
}

func wrapIo(err error) error {
	return &core.Error{Kind: core.IoError, Detail: err.Error()}
}

// fail prints err.Error() as one line on stderr and returns err; for a
// *core.Error that line has the "<kind>: <detail> (<uri>)" form. Used by
// every command.
func fail(err error) error {
	fmt.Fprintln(os.Stderr, err.Error())
	return err
}
