package hw

// Background tiles go through a 64-bit pipeline holding 2 tiles of 8 4-bit
// pixels (2 attribute bits, 2 pattern bits). The tile being drawn is in the
// high 32 bits, fine X selects the pixel.

func (p *PPU) renderPixel() {
	x := p.Cycle - 1
	y := p.Scanline

	var color uint8
	if !p.renderingEnabled() {
		color = p.palette[0]
	} else {
		bg := p.backgroundPixel()
		i, sprite := p.spritePixel()

		if x < 8 && p.mask&maskLeftBg == 0 {
			bg = 0
		}
		if x < 8 && p.mask&maskLeftSprites == 0 {
			sprite = 0
		}

		bgOpaque := bg%4 != 0
		spOpaque := sprite%4 != 0

		var idx uint8
		switch {
		case !bgOpaque && !spOpaque:
			idx = 0
		case !bgOpaque:
			idx = sprite | 0x10
		case !spOpaque:
			idx = bg
		default:
			if p.spriteIndexes[i] == 0 && x < 255 {
				p.status |= statusSprite0Hit
			}
			if p.spritePriorities[i] == 0 {
				idx = sprite | 0x10
			} else {
				idx = bg
			}
		}
		color = p.palette[paletteIndex(uint16(idx))]
	}

	if p.mask&maskGreyscale != 0 {
		color &= 0x30
	}
	p.back.Pix[y*FrameWidth+x] = color
}

func (p *PPU) backgroundPixel() uint8 {
	if p.mask&maskShowBg == 0 {
		return 0
	}
	data := uint32(p.tileData>>32) >> ((7 - p.x) * 4)
	return uint8(data & 0x0F)
}

// spritePixel returns the index of the first opaque sprite at the current
// dot in the scanline sprite list, and its color.
func (p *PPU) spritePixel() (uint8, uint8) {
	if p.mask&maskShowSprites == 0 {
		return 0, 0
	}
	for i := range p.spriteCount {
		off := p.Cycle - 1 - int(p.spritePositions[i])
		if off < 0 || off > 7 {
			continue
		}
		color := uint8(p.spritePatterns[i]>>((7-off)*4)) & 0x0F
		if color%4 == 0 {
			continue
		}
		return uint8(i), color
	}
	return 0, 0
}

func (p *PPU) spriteHeight() int {
	if p.ctrl&ctrlSprite16 != 0 {
		return 16
	}
	return 8
}

// evaluateSprites selects the first 8 sprites of OAM in range of the
// current scanline and fetches their patterns. Finding a 9th one sets the
// overflow flag.
func (p *PPU) evaluateSprites() {
	h := p.spriteHeight()
	count := 0
	for i := range 64 {
		y := p.OAM[i*4+0]
		attr := p.OAM[i*4+2]
		x := p.OAM[i*4+3]
		row := p.Scanline - int(y)
		if row < 0 || row >= h {
			continue
		}
		if count < 8 {
			p.spritePatterns[count] = p.fetchSpritePattern(i, row)
			p.spritePositions[count] = x
			p.spritePriorities[count] = (attr >> 5) & 1
			p.spriteIndexes[count] = uint8(i)
		}
		count++
	}
	if count > 8 {
		count = 8
		p.status |= statusOverflow
	}
	p.spriteCount = count
}

func (p *PPU) fetchSpritePattern(i, row int) uint32 {
	tile := p.OAM[i*4+1]
	attr := p.OAM[i*4+2]

	var addr uint16
	if p.ctrl&ctrlSprite16 == 0 {
		if attr&0x80 != 0 {
			row = 7 - row
		}
		var table uint16
		if p.ctrl&ctrlSpriteAddr != 0 {
			table = 0x1000
		}
		addr = table + uint16(tile)*16 + uint16(row)
	} else {
		if attr&0x80 != 0 {
			row = 15 - row
		}
		table := uint16(tile&1) * 0x1000
		tile &= 0xFE
		if row > 7 {
			tile++
			row -= 8
		}
		addr = table + uint16(tile)*16 + uint16(row)
	}

	lo := p.Bus.Read8(addr)
	hi := p.Bus.Read8(addr + 8)
	pal := (attr & 3) << 2

	var data uint32
	for range 8 {
		var p1, p2 uint8
		if attr&0x40 != 0 {
			// horizontal flip
			p1 = lo & 1
			p2 = (hi & 1) << 1
			lo >>= 1
			hi >>= 1
		} else {
			p1 = (lo & 0x80) >> 7
			p2 = (hi & 0x80) >> 6
			lo <<= 1
			hi <<= 1
		}
		data = data<<4 | uint32(pal|p1|p2)
	}
	return data
}

func (p *PPU) fetchNametableByte() {
	p.ntByte = p.Bus.Read8(0x2000 | p.v&0x0FFF)
}

func (p *PPU) fetchAttributeByte() {
	v := p.v
	addr := 0x23C0 | v&0x0C00 | (v>>4)&0x38 | (v>>2)&0x07
	shift := (v>>4)&4 | v&2
	p.atByte = ((p.Bus.Read8(addr) >> shift) & 3) << 2
}

// fetchPatternByte reads the low (plane 0) or high (plane 8) pattern byte
// of the current background tile row.
func (p *PPU) fetchPatternByte(plane uint16) uint8 {
	var table uint16
	if p.ctrl&ctrlBgAddr != 0 {
		table = 0x1000
	}
	fineY := (p.v >> 12) & 7
	return p.Bus.Read8(table + uint16(p.ntByte)*16 + fineY + plane)
}

func (p *PPU) storeTileData() {
	var data uint32
	for range 8 {
		p1 := (p.loByte & 0x80) >> 7
		p2 := (p.hiByte & 0x80) >> 6
		p.loByte <<= 1
		p.hiByte <<= 1
		data = data<<4 | uint32(p.atByte|p1|p2)
	}
	p.tileData |= uint64(data)
}

// v: ....A.. ...BCDEF <- t: ....A.. ...BCDEF
func (p *PPU) copyX() {
	p.v = p.v&0xFBE0 | p.t&0x041F
}

// v: GHIA.BC DEF..... <- t: GHIA.BC DEF.....
func (p *PPU) copyY() {
	p.v = p.v&0x841F | p.t&0x7BE0
}

func (p *PPU) incrementX() {
	if p.v&0x001F == 31 {
		p.v &= 0xFFE0
		p.v ^= 0x0400 // switch horizontal nametable
	} else {
		p.v++
	}
}

func (p *PPU) incrementY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &= 0x8FFF
	y := (p.v & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		p.v ^= 0x0800 // switch vertical nametable
	case 31:
		y = 0
	default:
		y++
	}
	p.v = p.v&0xFC1F | y<<5
}
