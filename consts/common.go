package consts

const HelpTemplate = `NAME:
   {{.Name}} - {{.Usage}}
USAGE:
   {{.HelpName}} {{if .VisibleFlags}}[global options]{{end}}{{if .Commands}} command [command options]{{end}} {{if .ArgsUsage}}{{.ArgsUsage}}{{else}}[arguments...]{{end}}
   {{if len .Authors}}
AUTHOR:
   {{range .Authors}}{{ . }}{{end}}
   {{end}}{{if .Commands}}
COMMANDS:
{{range .Commands}}{{if not .HideHelp}}   {{join .Names ", "}}{{ "\t"}}{{.Usage}}{{ "\n" }}{{end}}{{end}}{{end}}{{if .VisibleFlags}}
GLOBAL OPTIONS:
   {{range .VisibleFlags}}{{.}}
   {{end}}{{end}}{{if .Copyright }}
COPYRIGHT:
   {{.Copyright}}
   {{end}}{{if .Version}}
VERSION:
   {{.Version}}
   {{end}}
`

// MenuChoice 菜单选项
type MenuChoice int64

const (
	MenuChoiceUnknown MenuChoice = 0
	MenuChoiceInsert  MenuChoice = 1
	MenuChoiceUpdate  MenuChoice = 2
	MenuChoiceDelete  MenuChoice = 3
	MenuChoiceExit    MenuChoice = 4
)

func (mc MenuChoice) String() string {
	switch mc {
	case MenuChoiceInsert:
		return "insert"
	case MenuChoiceUpdate:
		return "update"
	case MenuChoiceDelete:
		return "delete"
	case MenuChoiceExit:
		return "exit"
	default:
		return "unknown"
	}
}
