package vanmaps

import (
	"encoding/json"
	"fmt"
	"github.com/ghetzel/go-stockutil/httputil"
	"github.com/husobee/vestigo"
	"net/http"
	"strings"
)

var DefaultSummaryReducerFunc = `median`

type Server struct {
	router *vestigo.Router
	store  *VariableStore
}

type regionSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code,omitempty"`
	InLondon bool   `json:"in_london,omitempty"`
}

type variableSummary struct {
	Variable   string             `json:"variable"`
	Level      string             `json:"level"`
	Statistics map[string]float64 `json:"statistics"`
}

func NewServer(store *VariableStore) *Server {
	router := vestigo.NewRouter()

	router.Get(`/regions/:level/list`, func(w http.ResponseWriter, req *http.Request) {
		if level, err := ParseGeographyLevel(vestigo.Param(req, `level`)); err == nil {
			set := ShippedRegions(level)

			if names, err := set.Names(httputil.Q(req, `filter`, `**`)); err == nil {
				regions := make([]regionSummary, len(names))

				for i, name := range names {
					region, _ := set.Get(name)

					regions[i] = regionSummary{
						ID:       region.ID,
						Name:     region.Name,
						Code:     region.Code,
						InLondon: region.InLondon,
					}
				}

				respond(w, regions)
			} else {
				respond(w, err, http.StatusBadRequest)
			}
		} else {
			respond(w, err, http.StatusNotFound)
		}
	})

	router.Get(`/variables/list`, func(w http.ResponseWriter, req *http.Request) {
		if store == nil {
			respond(w, fmt.Errorf("no variable store configured"), http.StatusServiceUnavailable)
			return
		}

		if names, err := store.GetNames(httputil.Q(req, `filter`, `**`)); err == nil {
			respond(w, names)
		} else {
			respond(w, err)
		}
	})

	router.Get(`/variables/summary/:variable`, func(w http.ResponseWriter, req *http.Request) {
		if store == nil {
			respond(w, fmt.Errorf("no variable store configured"), http.StatusServiceUnavailable)
			return
		}

		variable := vestigo.Param(req, `variable`)

		level, err := ParseGeographyLevel(httputil.Q(req, `level`, `counties`))

		if err != nil {
			respond(w, err, http.StatusBadRequest)
			return
		}

		gfn := strings.Split(httputil.Q(req, `fn`, DefaultSummaryReducerFunc), `,`)
		reducers := make([]ReducerFunc, len(gfn))

		for i, name := range gfn {
			if r, ok := GetReducer(name); ok {
				reducers[i] = r
			} else {
				respond(w, fmt.Errorf("Unknown summary function '%s'", name), http.StatusBadRequest)
				return
			}
		}

		set := ShippedRegions(level).Clone()

		if err := store.Apply(set, variable); err != nil {
			respond(w, err, http.StatusNotFound)
			return
		}

		statistics := make(map[string]float64)

		for i, value := range SummarizeVariable(set, variable, reducers...) {
			key := strings.Replace(GetReducerName(gfn[i]), `-`, `_`, -1)
			statistics[key] = value
		}

		respond(w, variableSummary{
			Variable:   variable,
			Level:      level.String(),
			Statistics: statistics,
		})
	})

	router.Get(`/maps/:level/:variable`, func(w http.ResponseWriter, req *http.Request) {
		if store == nil {
			respond(w, fmt.Errorf("no variable store configured"), http.StatusServiceUnavailable)
			return
		}

		level, err := ParseGeographyLevel(vestigo.Param(req, `level`))

		if err != nil {
			respond(w, err, http.StatusNotFound)
			return
		}

		variable := vestigo.Param(req, `variable`)

		options := MapOptions{
			Variable:   variable,
			Title:      httputil.Q(req, `title`),
			Source:     httputil.Q(req, `source`),
			Qtiles:     int(httputil.QInt(req, `qtiles`)),
			Greyscale:  httputil.QBool(req, `greyscale`),
			LondonOnly: httputil.QBool(req, `london`),
			Width:      int(httputil.QInt(req, `width`)),
			Height:     int(httputil.QInt(req, `height`)),
			DPI:        httputil.QFloat(req, `dpi`, DefaultDPI),
		}

		if breaks, err := ParseBreakList(httputil.Q(req, `breaks`)); err == nil {
			options.Breaks = breaks
		} else {
			respond(w, err, http.StatusBadRequest)
			return
		}

		set := ShippedRegions(level).Clone()

		if err := store.Apply(set, variable); err != nil {
			respond(w, err, http.StatusNotFound)
			return
		}

		format := RenderFormat(httputil.Q(req, `format`, string(RenderFormatPNG)))

		m := NewMap(set)
		m.Options = options

		// validate the bin/palette configuration before committing to an
		// image response, so configuration errors come back as JSON
		if _, _, _, err := m.Classify(); err != nil {
			if IsConfigurationError(err) {
				respond(w, err, http.StatusBadRequest)
			} else {
				respond(w, err)
			}

			return
		}

		switch format {
		case RenderFormatPNG:
			w.Header().Set(`Content-Type`, `image/png`)
		case RenderFormatSVG:
			w.Header().Set(`Content-Type`, `image/svg+xml`)
		default:
			respond(w, fmt.Errorf("Unsupported format %q", format), http.StatusBadRequest)
			return
		}

		if err := m.Render(w, format); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	return &Server{
		router: router,
		store:  store,
	}
}

func (self *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	self.router.ServeHTTP(w, req)
}

func respond(w http.ResponseWriter, data interface{}, code ...int) {
	w.Header().Set(`Content-Type`, `application/json`)

	if err, ok := data.(error); ok {
		data = map[string]interface{}{
			`error`: err.Error(),
		}

		if len(code) == 0 || code[0] < 400 {
			code = []int{http.StatusInternalServerError}
		}
	}

	if output, err := json.MarshalIndent(data, ``, `  `); err == nil {
		if len(code) > 0 {
			w.WriteHeader(code[0])
		}

		w.Write(output)
	} else {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
