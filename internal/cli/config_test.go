package cli_test

import (
	"path/filepath"
	"testing"

	"github.com/calvinalkan/gh-board/internal/cli"
)

// Tests for print-config command.

func Test_Print_Config_Defaults_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("print-config")
	cli.AssertContains(t, stdout, "effective_cwd="+c.Dir)
	cli.AssertContains(t, stdout, "gh=gh\n")
	cli.AssertContains(t, stdout, "(defaults only)")
}

func Test_Print_Config_From_Config_File_With_Comments_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile(".gh-board.json", `{
		// This is a comment
		"owner": "acme",
		"project": "12",
		"gh": "/usr/bin/gh",
	}`)

	stdout := c.MustRun("print-config")
	cli.AssertContains(t, stdout, "owner=acme")
	cli.AssertContains(t, stdout, "project=12")
	cli.AssertContains(t, stdout, "gh=/usr/bin/gh")
	cli.AssertContains(t, stdout, "project_config="+filepath.Join(c.Dir, ".gh-board.json"))
}

func Test_Print_Config_Explicit_Config_Flag_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile(".gh-board.json", `{"owner": "ignored"}`)
	c.WriteFile("custom.json", `{"owner": "custom"}`)

	for _, args := range [][]string{
		{"-c", "custom.json", "print-config"},
		{"--config=custom.json", "print-config"},
	} {
		stdout := c.MustRun(args...)
		cli.AssertContains(t, stdout, "owner=custom")
		cli.AssertNotContains(t, stdout, "ignored")
	}
}

func Test_Print_Config_Global_Config_When_XDG_Set(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	xdg := t.TempDir()
	c.Env["XDG_CONFIG_HOME"] = xdg
	c.WriteFile(".gh-board.json", `{"project": 3}`)

	globalPath := filepath.Join(xdg, "gh-board", "config.json")
	writeFile(t, globalPath, `{"owner": "global-org", "project": 1}`)

	stdout := c.MustRun("print-config")
	cli.AssertContains(t, stdout, "owner=global-org")
	cli.AssertContains(t, stdout, "project=3")
	cli.AssertContains(t, stdout, "global_config="+globalPath)
}

func Test_Print_Config_Global_Config_When_Only_HOME_Set(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	home := t.TempDir()
	c.Env["HOME"] = home

	writeFile(t, filepath.Join(home, ".config", "gh-board", "config.json"), `{"owner": "home-org"}`)

	stdout := c.MustRun("print-config")
	cli.AssertContains(t, stdout, "owner=home-org")
}

func Test_Print_Config_Flags_Override_Files_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile(".gh-board.json", `{"owner": "from-file", "project": 1, "gh": "file-gh"}`)

	stdout := c.MustRun("--owner=from-cli", "--project", "9", "--gh", "cli-gh", "print-config")
	cli.AssertContains(t, stdout, "owner=from-cli")
	cli.AssertContains(t, stdout, "project=9")
	cli.AssertContains(t, stdout, "gh=cli-gh")
}

// Tests for config errors.

func Test_Config_Explicit_Config_Not_Found_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("-c", "nonexistent.json", "print-config")
	cli.AssertContains(t, stderr, "config file not found")
}

func Test_Config_Invalid_JSON_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile(".gh-board.json", `{"owner": `)

	stderr := c.MustFail("print-config")
	cli.AssertContains(t, stderr, "invalid config file")
}

func Test_Config_Invalid_Project_Type_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile(".gh-board.json", `{"project": true}`)

	stderr := c.MustFail("print-config")
	cli.AssertContains(t, stderr, "project must be a number or string")
}

func Test_Config_Empty_Gh_In_File_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile(".gh-board.json", `{"gh": ""}`)

	stderr := c.MustFail("print-config")
	cli.AssertContains(t, stderr, "gh cannot be empty")
}
