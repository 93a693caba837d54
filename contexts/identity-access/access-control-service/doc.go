// Package accesscontrolservice manages the administrator role inside the
// identity-access context.
//
// The module answers "is this address an administrator" for the rest of the
// system and owns grant/revoke of the role. The first administrator comes
// from configuration seed; afterwards only an administrator can grant or
// revoke.
package accesscontrolservice
