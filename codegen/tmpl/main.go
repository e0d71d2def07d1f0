package tmpl

type Main struct {
	PackageName string
	TypesHash   string
	Version     string
	Bridges     []*Bridge
	SigMaps     bool
}

type Bridge struct {
	GoName       string
	ClassName    string
	InternalName string
	Methods      []*Method
}

type Method struct {
	ConstName string
	JavaName  string
	Static    bool
	Signature string
}
