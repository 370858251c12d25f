package domain

// NodeKind represents the type of emulated node
type NodeKind string

const (
	NodeKindHost   NodeKind = "host"
	NodeKindSwitch NodeKind = "switch"
)

// ProtocolOpenFlow13 is the controller-protocol tag declared by every built-in switch
const ProtocolOpenFlow13 = "OpenFlow13"

// Valid reports whether k is one of the known node kinds
func (k NodeKind) Valid() bool {
	return k == NodeKindHost || k == NodeKindSwitch
}

// Node represents a host or a switch. It is a value: once created, its
// label, kind and attributes cannot change.
type Node struct {
	label    string
	kind     NodeKind
	ip       string // hosts only
	protocol string // switches only
}

// NewHost creates a host node. An empty ip means no address is declared.
func NewHost(label, ip string) Node {
	return Node{label: label, kind: NodeKindHost, ip: ip}
}

// NewSwitch creates a switch node. An empty protocol means no version tag is declared.
func NewSwitch(label, protocol string) Node {
	return Node{label: label, kind: NodeKindSwitch, protocol: protocol}
}

// Label returns the node identity
func (n Node) Label() string {
	return n.label
}

// Kind returns whether the node is a host or a switch
func (n Node) Kind() NodeKind {
	return n.kind
}

// IsHost reports whether the node is a host
func (n Node) IsHost() bool {
	return n.kind == NodeKindHost
}

// IsSwitch reports whether the node is a switch
func (n Node) IsSwitch() bool {
	return n.kind == NodeKindSwitch
}

// IP returns the declared address of a host
func (n Node) IP() (string, bool) {
	return n.ip, n.ip != ""
}

// Protocol returns the declared protocol version tag of a switch
func (n Node) Protocol() (string, bool) {
	return n.protocol, n.protocol != ""
}

// String returns the node label prefixed by its kind, e.g. "switch s1"
func (n Node) String() string {
	return string(n.kind) + " " + n.label
}
