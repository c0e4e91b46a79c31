// Package actions implements the gl commands on top of a runtime.Context.
//
// Commands that can clobber uncommitted work (SwitchAction, SetHeadAction)
// hold the repository lock for their whole run and report through an
// op.Net, so the user is always told where their changes went.
package actions
