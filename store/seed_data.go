package store

// seedDistrict is one row of the fixed Gujarat reference list. Coordinates
// are district centroids; population and household counts are 2011-census
// derived estimates used to scale synthetic metrics.
type seedDistrict struct {
	Code         string
	Name         string
	NameHindi    string
	NameGujarati string
	Lat          float64
	Lon          float64
	Population   int64
	Households   int64
}

var gujaratDistricts = []seedDistrict{
	{"GJ01", "Ahmedabad", "अहमदाबाद", "અમદાવાદ", 23.0225, 72.5714, 7410000, 1200000},
	{"GJ02", "Amreli", "अमरेली", "અમરેલી", 21.6000, 71.2000, 1514000, 240000},
	{"GJ03", "Anand", "आनंद", "આણંદ", 22.5600, 72.9500, 2090000, 330000},
	{"GJ04", "Aravalli", "अरवल्ली", "અરવલ્લી", 23.5000, 73.0000, 1052000, 170000},
	{"GJ05", "Banaskantha", "बनासकांठा", "બનાસકાંઠા", 24.2500, 72.5000, 3120000, 500000},
	{"GJ06", "Bharuch", "भरूच", "ભરૂચ", 21.7000, 72.9667, 1550000, 250000},
	{"GJ07", "Bhavnagar", "भावनगर", "ભાવનગર", 21.7667, 72.1500, 2880000, 460000},
	{"GJ08", "Botad", "बोटाद", "બોટાદ", 22.1700, 71.6700, 656000, 105000},
	{"GJ09", "Chhota Udaipur", "छोटा उदयपुर", "છોટા ઉદેપુર", 22.3200, 74.0000, 1072000, 170000},
	{"GJ10", "Dahod", "दाहोद", "દાહોદ", 22.8300, 74.2600, 2127000, 340000},
	{"GJ11", "Dang", "डांग", "ડાંગ", 20.7500, 73.7500, 228000, 36000},
	{"GJ12", "Devbhoomi Dwarka", "देवभूमि द्वारका", "દેવભૂમિ દ્વારકા", 22.2400, 69.6500, 752000, 120000},
	{"GJ13", "Gandhinagar", "गांधीनगर", "ગાંધીનગર", 23.2200, 72.6500, 1387000, 220000},
	{"GJ14", "Gir Somnath", "गिर सोमनाथ", "ગીર સોમનાથ", 20.9100, 70.3700, 1217000, 195000},
	{"GJ15", "Jamnagar", "जामनगर", "જામનગર", 22.4700, 70.0700, 2160000, 345000},
	{"GJ16", "Junagadh", "जूनागढ़", "જૂનાગઢ", 21.5200, 70.4700, 2743000, 440000},
	{"GJ17", "Kheda", "खेड़ा", "ખેડા", 22.7500, 72.6833, 2299000, 370000},
	{"GJ18", "Kutch", "कच्छ", "કચ્છ", 23.7000, 70.9000, 2090000, 335000},
	{"GJ19", "Mahisagar", "महिसागर", "મહીસાગર", 23.1000, 73.3500, 994000, 160000},
	{"GJ20", "Mehsana", "मेहसाणा", "મહેસાણા", 23.6000, 72.4000, 2027000, 325000},
	{"GJ21", "Morbi", "मोरबी", "મોરબી", 22.8200, 70.8400, 961000, 155000},
	{"GJ22", "Narmada", "नर्मदा", "નર્મદા", 21.8700, 73.5000, 590000, 95000},
	{"GJ23", "Navsari", "नवसारी", "નવસારી", 20.9500, 72.9300, 1331000, 210000},
	{"GJ24", "Panchmahal", "पंचमहल", "પંચમહાલ", 22.7500, 73.6000, 2391000, 380000},
	{"GJ25", "Patan", "पाटन", "પાટણ", 23.8500, 72.1300, 1343000, 215000},
	{"GJ26", "Porbandar", "पोरबंदर", "પોરબંદર", 21.6400, 69.6000, 586000, 95000},
	{"GJ27", "Rajkot", "राजकोट", "રાજકોટ", 22.3000, 70.7833, 3805000, 610000},
	{"GJ28", "Sabarkantha", "साबरकांठा", "સાબરકાંઠા", 23.5000, 73.0000, 2428000, 390000},
	{"GJ29", "Surat", "सूरत", "સુરત", 21.1700, 72.8300, 6081000, 970000},
	{"GJ30", "Surendranagar", "सुरेंद्रनगर", "સુરેન્દ્રનગર", 22.7200, 71.6500, 1756000, 280000},
	{"GJ31", "Tapi", "तापी", "તાપી", 21.1200, 73.4000, 807000, 130000},
	{"GJ32", "Vadodara", "वडोदरा", "વડોદરા", 22.3000, 73.2000, 4165000, 665000},
	{"GJ33", "Valsad", "वलसाड", "વલસાડ", 20.3800, 72.9000, 1705000, 270000},
}
