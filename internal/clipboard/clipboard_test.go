package clipboard

import (
	"errors"
	"testing"
)

func lookPathFor(available map[string]string) func(string) (string, error) {
	return func(name string) (string, error) {
		if path, ok := available[name]; ok {
			return path, nil
		}
		return "", errors.New("not found")
	}
}

func TestSelectCommand_Darwin(t *testing.T) {
	cmd, err := SelectCommand("darwin", lookPathFor(map[string]string{"pbcopy": "/usr/bin/pbcopy"}))
	if err != nil {
		t.Fatalf("SelectCommand: %v", err)
	}
	if cmd.Path != "/usr/bin/pbcopy" || len(cmd.Args) != 0 {
		t.Fatalf("unexpected command: %+v", cmd)
	}
}

func TestSelectCommand_LinuxPrefersWayland(t *testing.T) {
	cmd, err := SelectCommand("linux", lookPathFor(map[string]string{
		"wl-copy": "/usr/bin/wl-copy",
		"xclip":   "/usr/bin/xclip",
	}))
	if err != nil {
		t.Fatalf("SelectCommand: %v", err)
	}
	if cmd.Path != "/usr/bin/wl-copy" {
		t.Fatalf("expected wl-copy, got %+v", cmd)
	}
}

func TestSelectCommand_LinuxXclipFallback(t *testing.T) {
	cmd, err := SelectCommand("linux", lookPathFor(map[string]string{"xclip": "/usr/bin/xclip"}))
	if err != nil {
		t.Fatalf("SelectCommand: %v", err)
	}
	if cmd.Path != "/usr/bin/xclip" || len(cmd.Args) != 2 {
		t.Fatalf("expected xclip with selection args, got %+v", cmd)
	}
}

func TestSelectCommand_WSLClipExe(t *testing.T) {
	cmd, err := SelectCommand("linux", lookPathFor(map[string]string{"clip.exe": "/mnt/c/Windows/System32/clip.exe"}))
	if err != nil {
		t.Fatalf("SelectCommand: %v", err)
	}
	if cmd.Path != "/mnt/c/Windows/System32/clip.exe" {
		t.Fatalf("expected clip.exe fallback, got %+v", cmd)
	}
}

func TestSelectCommand_NothingAvailable(t *testing.T) {
	if _, err := SelectCommand("linux", lookPathFor(nil)); !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
	if _, err := SelectCommand("plan9", lookPathFor(nil)); !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound for unknown platform, got %v", err)
	}
}
