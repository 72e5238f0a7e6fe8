package config

const psFlags = `-NoProfile -ExecutionPolicy Bypass -Command `

var defaultToolInstaller = CommandConfig{
	Program:   "powershell",
	Arguments: psFlags + `"iwr -useb https://raw.githubusercontent.com/spicetify/cli/main/install.ps1 | iex"`,
}

var defaultPluginInstallers = []CommandConfig{
	{
		Program:   "cmd",
		Arguments: `/c curl -fsSL https://raw.githubusercontent.com/spicetify/marketplace/main/resources/install.sh | sh`,
	},
	{
		Program: "powershell",
		Arguments: psFlags + `"Invoke-WebRequest -Uri 'https://raw.githubusercontent.com/spicetify/marketplace/main/resources/install.sh' -OutFile '$env:TEMP\install_marketplace.sh'; ` +
			`if (Get-Command bash -ErrorAction SilentlyContinue) { bash '$env:TEMP\install_marketplace.sh' } ` +
			`else { Write-Host 'Bash not available, marketplace installation skipped' }"`,
	},
}
