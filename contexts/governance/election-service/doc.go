// Package electionservice implements the single-election voting workflow
// inside the governance context.
//
// The module owns the six-stage workflow lifecycle, voter registration,
// proposal collection, restricted vote casting, and the plurality tally.
// Administrator gating and event notification are consumed through ports so
// the core stays testable without a real identity system or broker. Business
// rules live in application/domain layers; infrastructure stays behind
// adapters.
package electionservice
