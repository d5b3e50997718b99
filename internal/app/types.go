package app

type ConvertRequest struct {
	InputPath    string
	OutputPath   string
	ProjectDir   string
	Requirements string
	KeepPoetry   bool
	Interactive  bool
	Remove       []string
}

type ConvertResult struct {
	ProjectName  string
	OutputPath   string
	PinnedPath   string
	Dependencies int
	Groups       int
	Members      []string
}

type CheckRequest struct {
	InputPath  string
	ProjectDir string
}

type CheckResult struct {
	ProjectName  string
	Dependencies int
	Optional     int
	Groups       int
	Specifiers   int
}

type TranslateRequest struct {
	Expression string
}

type TranslateResult struct {
	Expression string
	Translated string
}
