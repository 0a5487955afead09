package cmd

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestDriftCommand(t *testing.T) {
	t.Run("既知の値は候補表の3語を出力する", func(t *testing.T) {
		got, err := run(t, "drift", "face-shape", "oval")
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if diff := cmp.Diff("round\nlong\nheart\n", got); diff != "" {
			t.Errorf("出力が一致しません (-want +got):\n%s", diff)
		}
	})

	t.Run("未知のカテゴリはエラー", func(t *testing.T) {
		_, err := run(t, "drift", "tail", "long")
		if err == nil || !strings.Contains(err.Error(), "faceShape") {
			t.Errorf("カテゴリ一覧を含むエラーを期待しました: %v", err)
		}
	})
}

func TestCompileCommand_Example(t *testing.T) {
	got, err := run(t, "compile", "--example")
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	for _, want := range []string{"# mysterious wanderer", "## Universal", "## Weighted", "--ar 16:9"} {
		if !strings.Contains(got, want) {
			t.Errorf("出力に %q が含まれていません:\n%s", want, got)
		}
	}
	if strings.Contains(got, "## Provider") {
		t.Error("compile ではプロバイダ向けプロンプトを出力しないはずです")
	}
}

func TestResolveLogLevel(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		env     string
		want    slog.Level
		wantErr bool
	}{
		{name: "既定は INFO", want: slog.LevelInfo},
		{name: "verbose は DEBUG", verbose: true, env: "error", want: slog.LevelDebug},
		{name: "小文字の指定", env: "warn", want: slog.LevelWarn},
		{name: "不正な値", env: "loud", want: slog.LevelInfo, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveLogLevel(tt.verbose, tt.env)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
