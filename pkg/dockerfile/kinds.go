package dockerfile

// Kind is the package-manager family a distribution uses. It decides which
// repository-configuration idiom and default commands go into the synthesized
// script.
type Kind int

const (
	KindUnknown Kind = iota
	KindApt
	KindYum
	KindDnf
	KindZypper
	KindApk
)

// ParseKind maps a config string to a Kind. Anything unrecognized is
// KindUnknown, which synthesizes the certain-failure script instead of
// erroring.
func ParseKind(s string) Kind {
	switch s {
	case "apt":
		return KindApt
	case "yum":
		return KindYum
	case "dnf":
		return KindDnf
	case "zypper":
		return KindZypper
	case "apk":
		return KindApk
	}
	return KindUnknown
}

func (k Kind) String() string {
	switch k {
	case KindApt:
		return "apt"
	case KindYum:
		return "yum"
	case KindDnf:
		return "dnf"
	case KindZypper:
		return "zypper"
	case KindApk:
		return "apk"
	}
	return "unknown"
}
