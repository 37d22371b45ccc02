package model

type ErrorResponse struct {
	Error string `json:"detail"`
}

type CreateCanvasBody struct {
	Name string `json:"name"`
}

type RenameBody struct {
	Name string `json:"name"`
}

type SecondsPerBarBody struct {
	SecondsPerBar float64 `json:"secondsPerBar"`
}

type TimeSignatureBody struct {
	TimeSignature int `json:"timeSignature"`
}

type ReorderLaneBody struct {
	To int `json:"to"`
}

type AddNoteBody struct {
	Tab       TabCoord `json:"tab"`
	StartTime float64  `json:"startTime"`
	Length    float64  `json:"length"`
	Snap      bool     `json:"snap"`
}

type TabBody struct {
	Tab TabCoord `json:"tab"`
}

type ValueBody struct {
	Value float64 `json:"value"`
	Snap  bool    `json:"snap"`
}

type NoteIdsBody struct {
	NoteIds []int `json:"noteIds"`
}

type SliceChordBody struct {
	Time int `json:"time"`
}

type TabsBody struct {
	Tabs []TabCoord `json:"tabs"`
}

type OctaveBody struct {
	Direction int `json:"direction"`
}

type AddBarsBody struct {
	Count int `json:"count"`
}

type ReorderBarBody struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type CutSegmentsBody struct {
	Segments []CutSegment `json:"segments"`
}

type CutShiftBody struct {
	Index   int `json:"index"`
	NewTime int `json:"newTime"`
}

type CutInsertBody struct {
	Time int       `json:"time"`
	Tab  *TabCoord `json:"tab,omitempty"`
}

type CutIndexBody struct {
	Index int `json:"index"`
}

type ImportStampsBody struct {
	Stamps []Stamp `json:"stamps"`
	Append bool    `json:"append"`
}

type OptimalsResponse struct {
	PossibleTabs []TabCoord `json:"possibleTabs"`
	BlockedTabs  []TabCoord `json:"blockedTabs"`
}

type AlternativesResponse struct {
	Alternatives [][]TabCoord `json:"alternatives"`
}

type TabTextResponse struct {
	Text string `json:"text"`
}
