package ines

//go:generate go tool stringer -type=NTMirroring

// NTMirroring describes how the 4 logical nametables map onto the console's
// 2KB of nametable RAM.
type NTMirroring uint8

const (
	HorzMirroring NTMirroring = iota // $2000=$2400, $2800=$2C00
	VertMirroring                    // $2000=$2800, $2400=$2C00
	OnlyAScreen                      // all 4 use the first 1KB
	OnlyBScreen                      // all 4 use the second 1KB
	FourScreen                       // 4KB, the cartridge provides the extra RAM
)
