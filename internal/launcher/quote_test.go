package launcher

import (
	"os/exec"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShellQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/tmp/run.sh", `'/tmp/run.sh'`},
		{"/tmp/My Script.sh", `'/tmp/My Script.sh'`},
		{"/tmp/it's.sh", `'/tmp/it'\''s.sh'`},
		{`/tmp/"quoted".sh`, `'/tmp/"quoted".sh'`},
		{"", `''`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, shellQuote(tt.in), tt.in)
	}
}

// The quoted form must come back out of a real shell as a single argument.
func TestShellQuoteSurvivesShell(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}

	for _, path := range []string{
		"/tmp/My Script.sh",
		"/tmp/it's here.sh",
		`/tmp/$HOME "and" \back`,
		"/tmp/semi;colon&amp",
	} {
		out, err := exec.Command(sh, "-c", "set -- "+shellQuote(path)+`; printf '%s|%d' "$1" "$#"`).Output()
		require.NoError(t, err)
		assert.Equal(t, path+"|1", string(out))
	}
}

func TestUnixTerminalArgsKeepsPathAsOneWord(t *testing.T) {
	args := unixTerminalArgs("xterm", "/tmp/My Script.sh")

	assert.Equal(t, []string{
		"xterm", "-e", "bash", "-c", `'/tmp/My Script.sh'; exec bash`,
	}, args)
}

func TestDarwinTerminalArgs(t *testing.T) {
	args := darwinTerminalArgs(`/tmp/My "Script".sh`)

	require.Len(t, args, 5)
	assert.Equal(t, "osascript", args[0])
	assert.Equal(t, "-e", args[1])
	assert.Equal(t,
		`tell application "Terminal" to do script "bash -c ''\\''/tmp/My \"Script\".sh'\\''; exec bash'"`,
		args[2])
	assert.Equal(t, `tell application "Terminal" to activate`, args[4])
}

func TestAppleScriptString(t *testing.T) {
	assert.Equal(t, `"plain"`, appleScriptString("plain"))
	assert.Equal(t, `"a \"b\" c"`, appleScriptString(`a "b" c`))
	assert.Equal(t, `"back\\slash"`, appleScriptString(`back\slash`))
}

func TestWindowsTerminalArgs(t *testing.T) {
	assert.Equal(t,
		[]string{"powershell.exe", "-NoExit", "-File", `C:\Scripts\My Script.ps1`},
		windowsTerminalArgs(`C:\Scripts\My Script.ps1`))
	assert.Equal(t,
		[]string{"powershell.exe", "-NoExit", "-File", `C:\Scripts\UPPER.PS1`},
		windowsTerminalArgs(`C:\Scripts\UPPER.PS1`))

	args := windowsTerminalArgs(`C:\Scripts\Bob's tool.bat`)
	require.Len(t, args, 4)
	assert.Equal(t, "-Command", args[2])
	assert.Equal(t, `& 'C:\Scripts\Bob''s tool.bat'`, args[3])
	assert.False(t, strings.Contains(args[3], `\'`))
}
