// Package localization maps the dashboard's fixed domain terms to the words a
// deployment wants to show its users.
package localization

import "sort"

// Term is one of the fixed domain-term keys
type Term string

const (
	OpenstackWithOwnKeystone                  Term = "openstackWithOwnKeystone"
	OpenstackSharingKeystoneWithAnother       Term = "openstackSharingKeystoneWithAnother"
	UnitOfTenancy                             Term = "unitOfTenancy"
	MaxResourcesPerProject                    Term = "maxResourcesPerProject"
	PKIPublicKeyForSSH                        Term = "pkiPublicKeyForSsh"
	VirtualComputer                           Term = "virtualComputer"
	VirtualComputerHardwareConfig             Term = "virtualComputerHardwareConfig"
	CloudInitData                             Term = "cloudInitData"
	CommandDrivenTextInterface                Term = "commandDrivenTextInterface"
	StaticRepresentationOfBlockDeviceContents Term = "staticRepresentationOfBlockDeviceContents"
	BlockDevice                               Term = "blockDevice"
	Share                                     Term = "share"
	AccessRule                                Term = "accessRule"
	ExportLocation                            Term = "exportLocation"
	NonFloatingIPAddress                      Term = "nonFloatingIpAddress"
	FloatingIPAddress                         Term = "floatingIpAddress"
	PubliclyRoutableIPAddress                 Term = "publiclyRoutableIpAddress"
	SecurityGroup                             Term = "securityGroup"
	GraphicalDesktopEnvironment               Term = "graphicalDesktopEnvironment"
	Hostname                                  Term = "hostname"
	Credential                                Term = "credential"
)

var defaults = map[Term]string{
	OpenstackWithOwnKeystone:                  "cloud",
	OpenstackSharingKeystoneWithAnother:       "region",
	UnitOfTenancy:                             "project",
	MaxResourcesPerProject:                    "resource limit",
	PKIPublicKeyForSSH:                        "SSH public key",
	VirtualComputer:                           "instance",
	VirtualComputerHardwareConfig:             "size",
	CloudInitData:                             "boot script",
	CommandDrivenTextInterface:                "terminal",
	StaticRepresentationOfBlockDeviceContents: "image",
	BlockDevice:                               "volume",
	Share:                                     "share",
	AccessRule:                                "access rule",
	ExportLocation:                            "export location",
	NonFloatingIPAddress:                      "internal IP address",
	FloatingIPAddress:                         "floating IP address",
	PubliclyRoutableIPAddress:                 "public IP address",
	SecurityGroup:                             "security group",
	GraphicalDesktopEnvironment:               "graphical desktop",
	Hostname:                                  "hostname",
	Credential:                                "credential",
}

// Overrides is the per-deployment term mapping as written in configuration.
// Missing or empty entries fall back to the defaults.
type Overrides map[Term]string

// Resolved is a total term mapping: every Term has a value
type Resolved map[Term]string

// Terms returns every fixed term key in lexical order
func Terms() []Term {
	terms := make([]Term, 0, len(defaults))
	for t := range defaults {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i] < terms[j] })
	return terms
}

// Default returns a fresh copy of the built-in localization
func Default() Resolved {
	out := make(Resolved, len(defaults))
	for t, v := range defaults {
		out[t] = v
	}
	return out
}

// DefaultFor returns the built-in word for a term
func DefaultFor(term Term) (string, bool) {
	v, ok := defaults[term]
	return v, ok
}

// Resolve merges overrides onto the defaults. A nil map resolves to Default().
func Resolve(overrides Overrides) Resolved {
	out := Default()
	for t := range out {
		if v := overrides[t]; v != "" {
			out[t] = v
		}
	}
	return out
}

// Get returns the word for a term, falling back to the default for a
// partially built map
func (r Resolved) Get(term Term) string {
	if v, ok := r[term]; ok && v != "" {
		return v
	}
	return defaults[term]
}

// UnknownTerms lists override keys that are not fixed terms, in lexical order
func UnknownTerms(overrides Overrides) []Term {
	var unknown []Term
	for t := range overrides {
		if _, ok := defaults[t]; !ok {
			unknown = append(unknown, t)
		}
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
	return unknown
}
