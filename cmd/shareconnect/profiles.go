package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yourusername/shareconnect-go/internal/domain"
)

// profileDocument is the YAML layout used by export and import
type profileDocument struct {
	Profiles []domain.ServerProfile `yaml:"profiles"`
}

var profilesCmd = &cobra.Command{
	Use:     "profiles",
	Aliases: []string{"profile"},
	Short:   "Manage server profiles",
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List server profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles, err := client().listProfiles(cmd.Context())
		if err != nil {
			return err
		}
		if len(profiles) == 0 {
			fmt.Println("No profiles configured. Add one with 'shareconnect profiles add'.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tTYPE\tADDRESS\tDEFAULT")
		for _, p := range profiles {
			def := ""
			if p.IsDefault {
				def = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				shortID(p.ID),
				truncate(p.Name, 30),
				p.ServiceTypeName,
				p.BaseURL(),
				def)
		}
		return w.Flush()
	},
}

var profilesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a server profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		var profile domain.ServerProfile
		applyProfileFlags(cmd, &profile)
		if profile.ServiceType == "" {
			profile.ServiceType = domain.ServiceMeTube
		}
		if err := profile.Validate(); err != nil {
			return err
		}

		c := client()
		created, err := c.createProfile(cmd.Context(), profile)
		if err != nil {
			return err
		}
		if makeDefault, _ := cmd.Flags().GetBool("default"); makeDefault {
			if err := c.setDefault(cmd.Context(), created.ID); err != nil {
				return err
			}
		}

		fmt.Printf("Profile added: %s (%s)\n", created.Name, created.ID)
		return nil
	},
}

var profilesEditCmd = &cobra.Command{
	Use:   "edit [profile]",
	Short: "Change fields of a server profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client()
		profiles, err := c.listProfiles(cmd.Context())
		if err != nil {
			return err
		}
		p, err := resolveProfile(profiles, args[0])
		if err != nil {
			return err
		}

		profile := p.ServerProfile
		applyProfileFlags(cmd, &profile)
		if err := profile.Validate(); err != nil {
			return err
		}
		if err := c.updateProfile(cmd.Context(), profile); err != nil {
			return err
		}

		fmt.Printf("Profile updated: %s\n", profile.Name)
		return nil
	},
}

var profilesDeleteCmd = &cobra.Command{
	Use:   "delete [profile]",
	Short: "Delete a server profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client()
		profiles, err := c.listProfiles(cmd.Context())
		if err != nil {
			return err
		}
		p, err := resolveProfile(profiles, args[0])
		if err != nil {
			return err
		}
		if err := c.deleteProfile(cmd.Context(), p.ID); err != nil {
			return err
		}

		fmt.Printf("Profile deleted: %s\n", p.Name)
		return nil
	},
}

var profilesDefaultCmd = &cobra.Command{
	Use:   "default [profile]",
	Short: "Show or set the default profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client()
		profiles, err := c.listProfiles(cmd.Context())
		if err != nil {
			return err
		}

		if len(args) == 0 {
			for _, p := range profiles {
				if p.IsDefault {
					fmt.Printf("%s (%s)\n", p.Name, p.ID)
					return nil
				}
			}
			if len(profiles) > 0 {
				fmt.Printf("%s (%s, first profile)\n", profiles[0].Name, profiles[0].ID)
				return nil
			}
			return fmt.Errorf("no profiles configured")
		}

		p, err := resolveProfile(profiles, args[0])
		if err != nil {
			return err
		}
		if err := c.setDefault(cmd.Context(), p.ID); err != nil {
			return err
		}
		fmt.Printf("Default profile: %s\n", p.Name)
		return nil
	},
}

var profilesExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export profiles as YAML (stdout when no file is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		views, err := client().listProfiles(cmd.Context())
		if err != nil {
			return err
		}
		profiles := make([]domain.ServerProfile, len(views))
		for i, v := range views {
			profiles[i] = v.ServerProfile
		}
		if noCreds, _ := cmd.Flags().GetBool("no-credentials"); noCreds {
			for i := range profiles {
				profiles[i].Username = ""
				profiles[i].Password = ""
			}
		}

		if len(args) == 0 {
			return encodeProfiles(os.Stdout, profiles)
		}

		f, err := os.OpenFile(args[0], os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer f.Close()
		if err := encodeProfiles(f, profiles); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Exported %d profiles to %s\n", len(profiles), args[0])
		return nil
	},
}

var profilesImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import profiles from a YAML export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open import file: %w", err)
		}
		defer f.Close()

		profiles, err := decodeProfiles(f)
		if err != nil {
			return err
		}

		c := client()
		for _, p := range profiles {
			created, err := c.createProfile(cmd.Context(), p)
			if err != nil {
				return fmt.Errorf("failed to import %q: %w", p.Name, err)
			}
			fmt.Printf("Imported %s (%s)\n", created.Name, created.ID)
		}
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{profilesAddCmd, profilesEditCmd} {
		cmd.Flags().StringP("name", "n", "", "Display name")
		cmd.Flags().String("host", "", "Server URL including http:// or https://")
		cmd.Flags().Int("port", 0, "Server port")
		cmd.Flags().StringP("type", "t", "", "Service type (metube, ytdl, torrent, jdownloader)")
		cmd.Flags().StringP("client", "c", "", "Torrent client (qbittorrent, transmission, utorrent)")
		cmd.Flags().StringP("username", "u", "", "Username")
		cmd.Flags().String("password", "", "Password")
	}
	profilesAddCmd.Flags().Bool("default", false, "Make the new profile the default")
	profilesExportCmd.Flags().Bool("no-credentials", false, "Leave usernames and passwords out of the export")

	profilesCmd.AddCommand(profilesListCmd)
	profilesCmd.AddCommand(profilesAddCmd)
	profilesCmd.AddCommand(profilesEditCmd)
	profilesCmd.AddCommand(profilesDeleteCmd)
	profilesCmd.AddCommand(profilesDefaultCmd)
	profilesCmd.AddCommand(profilesExportCmd)
	profilesCmd.AddCommand(profilesImportCmd)
}

// applyProfileFlags copies the flags the user set onto profile
func applyProfileFlags(cmd *cobra.Command, profile *domain.ServerProfile) {
	flags := cmd.Flags()
	if flags.Changed("name") {
		profile.Name, _ = flags.GetString("name")
	}
	if flags.Changed("host") {
		profile.Host, _ = flags.GetString("host")
	}
	if flags.Changed("port") {
		profile.Port, _ = flags.GetInt("port")
	}
	if flags.Changed("type") {
		t, _ := flags.GetString("type")
		profile.ServiceType = domain.ServiceType(t)
	}
	if flags.Changed("client") {
		c, _ := flags.GetString("client")
		profile.TorrentClientType = domain.TorrentClientType(c)
	}
	if flags.Changed("username") {
		profile.Username, _ = flags.GetString("username")
	}
	if flags.Changed("password") {
		profile.Password, _ = flags.GetString("password")
	}
}

func encodeProfiles(w io.Writer, profiles []domain.ServerProfile) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(profileDocument{Profiles: profiles}); err != nil {
		return fmt.Errorf("failed to encode profiles: %w", err)
	}
	return enc.Close()
}

// decodeProfiles reads an export. Ids are dropped so that imported profiles
// never collide with existing ones; every entry must be valid.
func decodeProfiles(r io.Reader) ([]domain.ServerProfile, error) {
	var doc profileDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("import file is empty")
		}
		return nil, fmt.Errorf("failed to parse profiles: %w", err)
	}

	for i := range doc.Profiles {
		p := &doc.Profiles[i]
		p.ID = ""
		if p.ServiceType == "" {
			p.ServiceType = domain.ServiceMeTube
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("profile %d (%q): %w", i+1, p.Name, err)
		}
	}
	return doc.Profiles, nil
}
