package palette

import (
	"sort"
	"strconv"
	"strings"
)

// Reset clears every colour and style attribute.
const Reset = "\x1b[0m"

// foreground returns the 256-colour foreground sequence for code.
func foreground(code int) string {
	return "\x1b[38;5;" + strconv.Itoa(code) + "m"
}

// table maps xterm colour names to their 256-colour index.
var table = map[string]int{
	"black":               0,
	"maroon":              1,
	"green":               2,
	"olive":               3,
	"navy":                4,
	"purple":              5,
	"teal":                6,
	"silver":              7,
	"grey":                8,
	"red":                 9,
	"lime":                10,
	"yellow":              11,
	"blue":                12,
	"fuchsia":             13,
	"aqua":                14,
	"white":               15,
	"navy_blue":           17,
	"dark_blue":           18,
	"blue_3":              20,
	"blue_1":              21,
	"dark_green":          22,
	"deep_sky_blue_4":     24,
	"dodger_blue_3":       26,
	"dodger_blue_2":       27,
	"green_4":             28,
	"spring_green_4":      29,
	"turquoise_4":         30,
	"deep_sky_blue_3":     32,
	"dodger_blue_1":       33,
	"green_3":             40,
	"spring_green_3":      41,
	"dark_cyan":           36,
	"light_sea_green":     37,
	"deep_sky_blue_2":     38,
	"deep_sky_blue_1":     39,
	"spring_green_2":      42,
	"cyan_3":              43,
	"dark_turquoise":      44,
	"turquoise_2":         45,
	"green_1":             46,
	"spring_green_1":      48,
	"medium_spring_green": 49,
	"cyan_2":              50,
	"cyan_1":              51,
	"dark_red":            52,
	"deep_pink_4":         53,
	"purple_4":            55,
	"purple_3":            56,
	"blue_violet":         57,
	"orange_4":            58,
	"grey_37":             59,
	"medium_purple_4":     60,
	"slate_blue_3":        61,
	"royal_blue_1":        63,
	"chartreuse_4":        64,
	"dark_sea_green_4":    65,
	"pale_turquoise_4":    66,
	"steel_blue":          67,
	"steel_blue_3":        68,
	"cornflower_blue":     69,
	"chartreuse_3":        70,
	"cadet_blue":          72,
	"sky_blue_3":          74,
	"steel_blue_1":        75,
	"pale_green_3":        77,
	"sea_green_3":         78,
	"aquamarine_3":        79,
	"medium_turquoise":    80,
	"chartreuse_2":        82,
	"sea_green_2":         83,
	"sea_green_1":         84,
	"aquamarine_1":        86,
	"dark_slate_gray_2":   87,
	"dark_magenta":        90,
	"dark_violet":         128,
	"purple_1":            129,
	"light_pink_4":        95,
	"plum_4":              96,
	"medium_purple_3":     97,
	"slate_blue_1":        99,
	"yellow_4":            100,
	"wheat_4":             101,
	"grey_53":             102,
	"light_slate_grey":    103,
	"medium_purple":       104,
	"light_slate_blue":    105,
	"dark_olive_green_3":  107,
	"dark_sea_green":      108,
	"light_sky_blue_3":    109,
	"sky_blue_2":          111,
	"dark_sea_green_3":    115,
	"dark_slate_gray_3":   116,
	"sky_blue_1":          117,
	"chartreuse_1":        118,
	"light_green":         119,
	"pale_green_1":        121,
	"dark_slate_gray_1":   123,
	"red_3":               124,
	"medium_violet_red":   126,
	"magenta_3":           127,
	"dark_orange_3":       130,
	"indian_red":          131,
	"hot_pink_3":          132,
	"medium_orchid_3":     133,
	"medium_orchid":       134,
	"medium_purple_2":     135,
	"dark_goldenrod":      136,
	"light_salmon_3":      137,
	"rosy_brown":          138,
	"grey_63":             139,
	"medium_purple_1":     141,
	"gold_3":              142,
	"dark_khaki":          143,
	"navajo_white_3":      144,
	"grey_69":             145,
	"light_steel_blue_3":  146,
	"light_steel_blue":    147,
	"yellow_3":            148,
	"dark_sea_green_2":    151,
	"light_cyan_3":        152,
	"light_sky_blue_1":    153,
	"green_yellow":        154,
	"dark_olive_green_2":  155,
	"dark_sea_green_1":    158,
	"pale_turquoise_1":    159,
	"deep_pink_3":         161,
	"magenta_2":           165,
	"hot_pink_2":          169,
	"orchid":              170,
	"medium_orchid_1":     171,
	"orange_3":            172,
	"light_pink_3":        174,
	"pink_3":              175,
	"plum_3":              176,
	"violet":              177,
	"light_goldenrod_3":   179,
	"tan":                 180,
	"misty_rose_3":        181,
	"thistle_3":           182,
	"plum_2":              183,
	"khaki_3":             185,
	"light_goldenrod_2":   186,
	"light_yellow_3":      187,
	"grey_84":             188,
	"light_steel_blue_1":  189,
	"yellow_2":            190,
	"dark_olive_green_1":  191,
	"honeydew_2":          194,
	"light_cyan_1":        195,
	"red_1":               196,
	"deep_pink_2":         197,
	"deep_pink_1":         198,
	"magenta_1":           201,
	"orange_red_1":        202,
	"indian_red_1":        203,
	"hot_pink":            205,
	"dark_orange":         208,
	"salmon_1":            209,
	"light_coral":         210,
	"pale_violet_red_1":   211,
	"orchid_2":            212,
	"orchid_1":            213,
	"orange_1":            214,
	"sandy_brown":         215,
	"light_salmon_1":      216,
	"light_pink_1":        217,
	"pink_1":              218,
	"plum_1":              219,
	"gold_1":              220,
	"light_goldenrod_1":   227,
	"navajo_white_1":      223,
	"misty_rose_1":        224,
	"thistle_1":           225,
	"yellow_1":            226,
	"khaki_1":             228,
	"wheat_1":             229,
	"cornsilk_1":          230,
	"grey_100":            231,
	"grey_3":              232,
	"grey_7":              233,
	"grey_11":             234,
	"grey_15":             235,
	"grey_19":             236,
	"grey_23":             237,
	"grey_27":             238,
	"grey_30":             239,
	"grey_35":             240,
	"grey_39":             241,
	"grey_42":             242,
	"grey_46":             243,
	"grey_50":             244,
	"grey_54":             245,
	"grey_58":             246,
	"grey_62":             247,
	"grey_66":             248,
	"grey_70":             249,
	"grey_74":             250,
	"grey_78":             251,
	"grey_82":             252,
	"grey_85":             253,
	"grey_89":             254,
	"grey_93":             255,
}

// Lookup returns the escape sequence for a colour name. Names are matched
// case-insensitively; "default" and "reset" map to Reset.
func Lookup(name string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "default" || key == "reset" {
		return Reset, true
	}
	code, ok := table[key]
	if !ok {
		return "", false
	}
	return foreground(code), true
}

// MustLookup is like Lookup but panics on an unknown name.
// Use it for compile-time constant names only.
func MustLookup(name string) string {
	seq, ok := Lookup(name)
	if !ok {
		panic("palette: unknown colour " + strconv.Quote(name))
	}
	return seq
}

// Names returns every known colour name in sorted order.
func Names() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Code returns the 256-colour index of name.
func Code(name string) (int, bool) {
	code, ok := table[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}
