//go:build !windows

package config

var defaultToolInstaller = CommandConfig{
	Program:   "sh",
	Arguments: `-c "curl -fsSL https://raw.githubusercontent.com/spicetify/cli/main/install.sh | sh"`,
}

var defaultPluginInstallers = []CommandConfig{
	{
		Program:   "sh",
		Arguments: `-c "curl -fsSL https://raw.githubusercontent.com/spicetify/marketplace/main/resources/install.sh | sh"`,
	},
	{
		Program:   "sh",
		Arguments: `-c "wget -qO- https://raw.githubusercontent.com/spicetify/marketplace/main/resources/install.sh | sh"`,
	},
}
