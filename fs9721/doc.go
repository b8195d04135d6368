// Package fs9721 decodes the serial byte stream emitted by FS9721-family
// digital multimeter chipsets (TekPower TP4000ZC, Sinometer MAS-345, and the
// meters QtDMM drives in "VC820" mode) into structured readings.
//
// # Protocol Overview
//
// The meter transmits a burst of 14 bytes roughly every 250ms, one burst per
// display refresh. The high nibble of each byte carries the byte's 1-indexed
// position within the frame (1-14) for synchronization; the low nibble carries
// the data. There is no start-of-frame delimiter, so alignment is recovered by
// reading a single byte, trusting its position marker, and skipping to the next
// frame boundary.
//
// Each data bit maps to one element of the meter's LCD: segments of the four
// 7-segment digits, the sign, the decimal points, and the mode/unit
// annunciators. Bytes 1 and 10-14 hold flags; byte pairs (2,3), (4,5), (6,7)
// and (8,9) hold the digits. Within a digit pair, the top bit of the first
// nibble is the sign (first digit) or the leading decimal point (remaining
// digits), and the other seven bits select a 7-segment pattern.
//
// # Reading Pipeline
//
//	port/byte source -> synchronize -> read+validate frame -> decode -> interpret
//
// Frame-level problems (timeouts, position-marker mismatches) are structural
// and surface as errors, with bounded retry and re-synchronization. Display
// anomalies (an unrecognized segment pattern, conflicting annunciators) are
// data-quality issues: they never fail a read, they mark the produced Value as
// not sane while keeping the raw data available for diagnostics.
//
// Serial settings for these meters are fixed at 2400 baud 8N1.
package fs9721
