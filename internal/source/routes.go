package source

import "backend-stridehub/internal/shared/geo"

// PresetRoute is a canned city path the waypoint simulator can follow.
type PresetRoute struct {
	Key  string      `json:"key"`
	Name string      `json:"name"`
	Path []geo.Point `json:"-"`
}

// Simulation routes in Kyiv.
var presetRoutes = map[string]PresetRoute{
	"khreshchatyk-peizazhna": {
		Key:  "khreshchatyk-peizazhna",
		Name: "Khreshchatyk - Peizazhna Aleya",
		Path: []geo.Point{
			{Lat: 50.442601795194236, Lng: 30.5201383312014},
			{Lat: 50.44494900814769, Lng: 30.520896482032448},
			{Lat: 50.44610238553621, Lng: 30.513555309336578},
			{Lat: 50.44839058324258, Lng: 30.51419997231882},
			{Lat: 50.448716541586585, Lng: 30.51235005824927},
			{Lat: 50.4492510231102, Lng: 30.512513870195303},
			{Lat: 50.44931418598067, Lng: 30.512148774919297},
			{Lat: 50.45212075106863, Lng: 30.508549050380285},
			{Lat: 50.45277449439065, Lng: 30.509447094480745},
			{Lat: 50.454037271951066, Lng: 30.511095376918963},
			{Lat: 50.45531707970836, Lng: 30.511591201796953},
			{Lat: 50.4557550504094, Lng: 30.511644804491112},
			{Lat: 50.45625859973631, Lng: 30.511495172277403},
			{Lat: 50.456415748705815, Lng: 30.512179519340208},
		},
	},
	"maidan-kontractova": {
		Key:  "maidan-kontractova",
		Name: "Maidan Nezalezhnosti - Kontractova",
		Path: []geo.Point{
			{Lat: 50.45036652557739, Lng: 30.52399312452294},
			{Lat: 50.45301761495805, Lng: 30.527694938058588},
			{Lat: 50.454381836360426, Lng: 30.527500525603475},
			{Lat: 50.45595749935229, Lng: 30.528004405268167},
			{Lat: 50.4575987152932, Lng: 30.526785856820048},
			{Lat: 50.46115287870685, Lng: 30.52163725662364},
			{Lat: 50.46291509846378, Lng: 30.51901517693397},
			{Lat: 50.46348068720411, Lng: 30.519484567323723},
		},
	},
	"kontractova-parkovyi-mist": {
		Key:  "kontractova-parkovyi-mist",
		Name: "Kontractova - Parkovyi Mist",
		Path: []geo.Point{
			{Lat: 50.46369970384063, Lng: 30.519325714145452},
			{Lat: 50.462893036365905, Lng: 30.519017177382644},
			{Lat: 50.45905359066983, Lng: 30.524667016954925},
			{Lat: 50.4591804253323, Lng: 30.52494396413249},
			{Lat: 50.45882410682564, Lng: 30.52542304409286},
			{Lat: 50.459035331348396, Lng: 30.526688523985683},
			{Lat: 50.45863344317211, Lng: 30.527096648591485},
			{Lat: 50.458738712971574, Lng: 30.5276096822773},
			{Lat: 50.45784233411939, Lng: 30.5283977069594},
			{Lat: 50.457748869700254, Lng: 30.528432940738316},
			{Lat: 50.456247452313306, Lng: 30.531105670547657},
			{Lat: 50.45561107283065, Lng: 30.532492715064066},
			{Lat: 50.45537637797396, Lng: 30.53212435037414},
			{Lat: 50.455067194361746, Lng: 30.53180774667679},
			{Lat: 50.45486107083095, Lng: 30.53232431060404},
			{Lat: 50.45485803959586, Lng: 30.532319549646182},
			{Lat: 50.45690326216931, Lng: 30.534428012872404},
		},
	},
}

// Routes lists the available preset routes for configuration UIs.
func Routes() []PresetRoute {
	out := make([]PresetRoute, 0, len(presetRoutes))
	for _, r := range presetRoutes {
		out = append(out, r)
	}
	return out
}

// RouteByKey looks up a preset route; false when the key is unknown.
func RouteByKey(key string) (PresetRoute, bool) {
	r, ok := presetRoutes[key]
	return r, ok
}
