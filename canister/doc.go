// Package canister reads the Candid metadata that Internet Computer
// canister modules carry in Wasm custom sections.
//
// A section named "icp:public candid:service" holds the canister's Candid
// interface, and "icp:private candid:args" (or public) its init arguments.
// Exported functions named "canister_query <m>", "canister_update <m>" and
// "canister_composite_query <m>" are the canister's entry points.
package canister
