package rules

import "strings"

func setOf(words string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	return set
}

// knownProperties lists standard CSS properties.
var knownProperties = setOf(`
align-content align-items align-self alignment-baseline all animation animation-delay
animation-direction animation-duration animation-fill-mode animation-iteration-count
animation-name animation-play-state animation-timing-function appearance aspect-ratio
backdrop-filter backface-visibility background background-attachment background-blend-mode
background-clip background-color background-image background-origin background-position
background-position-x background-position-y background-repeat background-size
baseline-shift block-size border border-block border-block-end border-block-start
border-bottom border-bottom-color border-bottom-left-radius border-bottom-right-radius
border-bottom-style border-bottom-width border-collapse border-color border-image
border-image-outset border-image-repeat border-image-slice border-image-source
border-image-width border-inline border-inline-end border-inline-start border-left
border-left-color border-left-style border-left-width border-radius border-right
border-right-color border-right-style border-right-width border-spacing border-style
border-top border-top-color border-top-left-radius border-top-right-radius border-top-style
border-top-width border-width bottom box-decoration-break box-shadow box-sizing
break-after break-before break-inside caption-side caret-color clear clip clip-path
clip-rule color color-interpolation color-interpolation-filters color-scheme column-count
column-fill column-gap column-rule column-rule-color column-rule-style column-rule-width
column-span column-width columns contain content counter-increment counter-reset
counter-set cursor direction display dominant-baseline empty-cells fill fill-opacity
fill-rule filter flex flex-basis flex-direction flex-flow flex-grow flex-shrink flex-wrap
float flood-color flood-opacity font font-display font-family font-feature-settings
font-kerning font-size font-size-adjust font-stretch font-style font-synthesis
font-variant font-variant-caps font-variant-ligatures font-variant-numeric
font-weight gap grid grid-area grid-auto-columns grid-auto-flow grid-auto-rows
grid-column grid-column-end grid-column-gap grid-column-start grid-gap grid-row
grid-row-end grid-row-gap grid-row-start grid-template grid-template-areas
grid-template-columns grid-template-rows hanging-punctuation height hyphens
image-rendering ime-mode inline-size inset isolation justify-content justify-items
justify-self left letter-spacing lighting-color line-break line-height list-style
list-style-image list-style-position list-style-type margin margin-block margin-block-end
margin-block-start margin-bottom margin-inline margin-inline-end margin-inline-start
margin-left margin-right margin-top marker marker-end marker-mid marker-start mask
mask-image mask-mode mask-position mask-repeat mask-size mask-type max-block-size
max-height max-inline-size max-width min-block-size min-height min-inline-size min-width
mix-blend-mode object-fit object-position opacity order orphans outline outline-color
outline-offset outline-style outline-width overflow overflow-anchor overflow-wrap
overflow-x overflow-y overscroll-behavior padding padding-block padding-bottom
padding-inline padding-left padding-right padding-top page-break-after
page-break-before page-break-inside paint-order perspective perspective-origin
place-content place-items place-self pointer-events position quotes resize right
rotate row-gap scale scroll-behavior scroll-margin scroll-padding scroll-snap-align
scroll-snap-type scrollbar-color scrollbar-width shape-outside shape-rendering speak
src stop-color stop-opacity stroke stroke-dasharray stroke-dashoffset stroke-linecap
stroke-linejoin stroke-miterlimit stroke-opacity stroke-width tab-size table-layout
text-align text-align-last text-anchor text-decoration text-decoration-color
text-decoration-line text-decoration-style text-emphasis text-indent text-justify
text-orientation text-overflow text-rendering text-shadow text-size-adjust
text-transform text-underline-position top touch-action transform transform-box
transform-origin transform-style transition transition-delay transition-duration
transition-property transition-timing-function translate unicode-bidi unicode-range
user-select vector-effect vertical-align visibility white-space widows width will-change
word-break word-spacing word-wrap writing-mode z-index zoom
`)

// namedColors lists the CSS color keywords.
var namedColors = setOf(`
aliceblue antiquewhite aqua aquamarine azure beige bisque black blanchedalmond blue
blueviolet brown burlywood cadetblue chartreuse chocolate coral cornflowerblue cornsilk
crimson cyan darkblue darkcyan darkgoldenrod darkgray darkgreen darkgrey darkkhaki
darkmagenta darkolivegreen darkorange darkorchid darkred darksalmon darkseagreen
darkslateblue darkslategray darkslategrey darkturquoise darkviolet deeppink deepskyblue
dimgray dimgrey dodgerblue firebrick floralwhite forestgreen fuchsia gainsboro ghostwhite
gold goldenrod gray green greenyellow grey honeydew hotpink indianred indigo ivory khaki
lavender lavenderblush lawngreen lemonchiffon lightblue lightcoral lightcyan
lightgoldenrodyellow lightgray lightgreen lightgrey lightpink lightsalmon lightseagreen
lightskyblue lightslategray lightslategrey lightsteelblue lightyellow lime limegreen
linen magenta maroon mediumaquamarine mediumblue mediumorchid mediumpurple
mediumseagreen mediumslateblue mediumspringgreen mediumturquoise mediumvioletred
midnightblue mintcream mistyrose moccasin navajowhite navy oldlace olive olivedrab orange
orangered orchid palegoldenrod palegreen paleturquoise palevioletred papayawhip peachpuff
peru pink plum powderblue purple rebeccapurple red rosybrown royalblue saddlebrown salmon
sandybrown seagreen seashell sienna silver skyblue slateblue slategray slategrey snow
springgreen steelblue tan teal thistle tomato turquoise violet wheat white whitesmoke
yellow yellowgreen
`)

// colorProperties are the properties whose values may hold colors.
var colorProperties = setOf(`
color background background-color border border-color border-top border-right
border-bottom border-left border-top-color border-right-color border-bottom-color
border-left-color outline outline-color box-shadow text-shadow column-rule
column-rule-color text-decoration-color fill stroke caret-color
`)

// vendorVariants maps properties to the prefixed variants that must
// accompany each other.
var vendorVariants = map[string][]string{
	"animation":                  {"-webkit-", "-moz-", "-o-"},
	"animation-delay":            {"-webkit-", "-moz-", "-o-"},
	"animation-direction":        {"-webkit-", "-moz-", "-o-"},
	"animation-duration":         {"-webkit-", "-moz-", "-o-"},
	"animation-fill-mode":        {"-webkit-", "-moz-", "-o-"},
	"animation-iteration-count":  {"-webkit-", "-moz-", "-o-"},
	"animation-name":             {"-webkit-", "-moz-", "-o-"},
	"animation-play-state":       {"-webkit-", "-moz-", "-o-"},
	"animation-timing-function":  {"-webkit-", "-moz-", "-o-"},
	"appearance":                 {"-webkit-", "-moz-"},
	"backface-visibility":        {"-webkit-", "-moz-"},
	"border-image":               {"-webkit-", "-moz-", "-o-"},
	"box-sizing":                 {"-webkit-", "-moz-"},
	"box-shadow":                 {"-webkit-", "-moz-"},
	"column-count":               {"-webkit-", "-moz-"},
	"column-gap":                 {"-webkit-", "-moz-"},
	"column-rule":                {"-webkit-", "-moz-"},
	"column-width":               {"-webkit-", "-moz-"},
	"columns":                    {"-webkit-", "-moz-"},
	"hyphens":                    {"-webkit-", "-moz-", "-ms-"},
	"perspective":                {"-webkit-", "-moz-"},
	"perspective-origin":         {"-webkit-", "-moz-"},
	"transform":                  {"-webkit-", "-moz-", "-ms-", "-o-"},
	"transform-origin":           {"-webkit-", "-moz-", "-ms-", "-o-"},
	"transform-style":            {"-webkit-", "-moz-"},
	"transition":                 {"-webkit-", "-moz-", "-o-"},
	"transition-delay":           {"-webkit-", "-moz-", "-o-"},
	"transition-duration":        {"-webkit-", "-moz-", "-o-"},
	"transition-property":        {"-webkit-", "-moz-", "-o-"},
	"transition-timing-function": {"-webkit-", "-moz-", "-o-"},
	"user-select":                {"-webkit-", "-moz-", "-ms-"},
}

// shorthands maps shorthand properties to the longhands they replace.
var shorthands = map[string][]string{
	"margin":  {"margin-top", "margin-right", "margin-bottom", "margin-left"},
	"padding": {"padding-top", "padding-right", "padding-bottom", "padding-left"},
	"font":    {"font-family", "font-size", "line-height"},
	"border-width": {
		"border-top-width", "border-right-width", "border-bottom-width", "border-left-width",
	},
	"list-style": {"list-style-type", "list-style-position", "list-style-image"},
}
