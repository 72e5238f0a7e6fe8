package envpath

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeMergedPathScopeOrder(t *testing.T) {
	m := NewMerger(Static{
		ProcessPath:  `C:\A;C:\B`,
		RegistryPath: `C:\B;C:\C`,
		MachinePath:  ``,
		UserPath:     `C:\D`,
	}, WithSeparator(";"))

	assert.Equal(t, `C:\A;C:\B;C:\C;C:\D`, m.ComputeMergedPath())
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{name: "empty", values: []string{"", " ", ";;"}, want: ""},
		{name: "trims segments", values: []string{` C:\A ; ;C:\B`}, want: `C:\A;C:\B`},
		{name: "case-insensitive dedup keeps first", values: []string{`C:\Tools`, `c:\tools;C:\Other`}, want: `C:\Tools;C:\Other`},
		{name: "duplicates inside one scope", values: []string{`C:\A;C:\A;C:\B`}, want: `C:\A;C:\B`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Merge(";", tt.values...))
		})
	}
}

func TestDropReferences(t *testing.T) {
	raw := `%SystemRoot%\system32;C:\Program Files\Git\cmd;%USERPROFILE%\bin;C:\Tools`
	assert.Equal(t, `C:\Program Files\Git\cmd;C:\Tools`, dropReferences(raw, ";", "%"))
	assert.Equal(t, "/usr/bin", dropReferences("$HOME/bin:/usr/bin", ":", "$"))
	assert.Equal(t, "", dropReferences("%PATH%", ";", "%"))
}

func TestUnexpandedRegistryScopeNeverReachesProcessPath(t *testing.T) {
	m := NewMerger(Static{
		ProcessPath:  `C:\Windows\system32`,
		RegistryPath: dropReferences(`%SystemRoot%\system32;C:\Users\me\spicetify`, ";", "%"),
		MachinePath:  `C:\Windows\system32;C:\Users\me\spicetify`,
	}, WithSeparator(";"))

	assert.Equal(t, `C:\Windows\system32;C:\Users\me\spicetify`, m.ComputeMergedPath())
}

func TestApplySetsProcessPath(t *testing.T) {
	var gotKey, gotValue string
	m := NewMerger(Static{ProcessPath: "/usr/bin", UserPath: "/home/u/.spicetify"}, WithSeparator(":"))
	m.setenv = func(k, v string) error {
		gotKey, gotValue = k, v
		return nil
	}

	merged, err := m.Apply()
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin:/home/u/.spicetify", merged)
	assert.Equal(t, "PATH", gotKey)
	assert.Equal(t, merged, gotValue)
}

func TestApplyError(t *testing.T) {
	m := NewMerger(Static{ProcessPath: "/usr/bin"}, WithSeparator(":"))
	m.setenv = func(string, string) error { return errors.New("denied") }

	_, err := m.Apply()
	assert.Error(t, err)
}

func TestApplyRealEnvironment(t *testing.T) {
	t.Setenv("PATH", "/usr/bin")
	m := NewMerger(Static{ProcessPath: "/usr/bin", MachinePath: "/opt/tool/bin"}, WithSeparator(":"))

	_, err := m.Apply()
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin:/opt/tool/bin", os.Getenv("PATH"))
}
