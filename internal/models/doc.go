// Package models defines the persisted domain models for shopnsplit.
//
// # Models
//
//   - User: a registered account that owns saved receipts
//   - Receipt: a saved bill-splitting session with its frozen totals
//
// Participants on a receipt are plain display-name strings. They are
// deliberately decoupled from user accounts: whoever saves a receipt
// types in the names of the people who went shopping, and none of those
// people need an account of their own.
//
// # Frozen totals
//
// A receipt's totals are computed by the allocation engine once, at save
// time, and stored verbatim. They are never recomputed on read. If the
// allocation rules ever change, old receipts keep showing the numbers
// everyone agreed to at the time.
package models
