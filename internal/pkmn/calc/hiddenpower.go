package calc

// HiddenPower is the type and base power Hidden Power takes for a set of IVs.
type HiddenPower struct {
	Type  string
	Power int
}

// hiddenPowerTypes excludes Normal; index 0 is Fighting.
var hiddenPowerTypes = []string{
	"Fighting", "Flying", "Poison", "Ground", "Rock", "Bug", "Ghost", "Steel",
	"Fire", "Water", "Grass", "Electric", "Psychic", "Ice", "Dragon", "Dark",
}

// Gen2HiddenPower derives Hidden Power from Generation II IVs.
func Gen2HiddenPower(attack, defense, speed, special int) (HiddenPower, error) {
	if err := checkGBIVs(attack, defense, speed, special); err != nil {
		return HiddenPower{}, err
	}
	msb := func(iv int) int { return (iv >> 3) & 1 }
	sum := msb(special) | msb(speed)<<1 | msb(defense)<<2 | msb(attack)<<3
	return HiddenPower{
		Type:  hiddenPowerTypes[4*(attack%4)+defense%4],
		Power: (5*sum+special%4)/2 + 31,
	}, nil
}

// ModernHiddenPower derives Hidden Power from Generation III+ IVs.
func ModernHiddenPower(hp, attack, defense, speed, spAtk, spDef int) (HiddenPower, error) {
	if err := checkModernIVs(hp, attack, defense, speed, spAtk, spDef); err != nil {
		return HiddenPower{}, err
	}
	ivs := []int{hp, attack, defense, speed, spAtk, spDef}
	var typeBits, powerBits int
	for i, iv := range ivs {
		typeBits |= (iv & 1) << i
		powerBits |= ((iv >> 1) & 1) << i
	}
	return HiddenPower{
		Type:  hiddenPowerTypes[typeBits*15/63],
		Power: powerBits*40/63 + 30,
	}, nil
}
