package main

import (
	"testing"
)

func TestBundleCmd_FlagsExist(t *testing.T) {
	cmd := bundleCmd()

	expectedFlags := []string{"config", "entry", "output", "minify", "concurrency", "verbose", "no-progress"}
	for _, flagName := range expectedFlags {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestBundleCmd_ShortFlags(t *testing.T) {
	cmd := bundleCmd()

	shortFlags := map[string]string{
		"c": "config",
		"e": "entry",
		"o": "output",
		"v": "verbose",
	}

	for short, long := range shortFlags {
		flag := cmd.Flags().ShorthandLookup(short)
		if flag == nil {
			t.Errorf("Missing short flag -%s for --%s", short, long)
		}
	}
}

func TestBundleCmd_AcceptsAtMostOneArg(t *testing.T) {
	cmd := bundleCmd()
	cmd.SetArgs([]string{"a.js", "b.js"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error when more than one entry argument is given")
	}
}

func TestDepsCmd_FlagsExist(t *testing.T) {
	cmd := depsCmd()

	expectedFlags := []string{"format", "output", "dot", "include-external", "no-cycles", "max-depth", "no-legend", "rank-dir", "no-recursive"}
	for _, flagName := range expectedFlags {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestDepsCmd_ShortFlags(t *testing.T) {
	cmd := depsCmd()

	shortFlags := map[string]string{
		"f": "format",
		"o": "output",
	}

	for short, long := range shortFlags {
		flag := cmd.Flags().ShorthandLookup(short)
		if flag == nil {
			t.Errorf("Missing short flag -%s for --%s", short, long)
		}
	}
}

func TestDepsCmd_DefaultValues(t *testing.T) {
	cmd := depsCmd()

	formatFlag := cmd.Flags().Lookup("format")
	if formatFlag == nil {
		t.Fatal("format flag not found")
	}
	if formatFlag.DefValue != "text" {
		t.Errorf("Expected default format to be 'text', got '%s'", formatFlag.DefValue)
	}
}

func TestDepsCmd_NoPathsError(t *testing.T) {
	cmd := depsCmd()
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	if err == nil {
		t.Error("Expected error when no paths specified")
	}
}

func TestVersionCmd_FlagsExist(t *testing.T) {
	cmd := versionCmd()

	if cmd == nil {
		t.Fatal("versionCmd should not return nil")
	}

	verboseFlag := cmd.Flags().Lookup("verbose")
	if verboseFlag == nil {
		t.Error("Missing expected flag: --verbose")
	}
}

func TestVersionCmd_ShortFlag(t *testing.T) {
	cmd := versionCmd()

	flag := cmd.Flags().ShorthandLookup("v")
	if flag == nil {
		t.Error("Missing short flag -v for --verbose")
	}
}
