package routes

import (
	"net/http"

	carthandler "rocketcart/internal/handlers/cart"
	"rocketcart/pkg/lib/urlparser"
)

type Routes struct {
	cartHandler *carthandler.Handler
}

func New(cartHandler *carthandler.Handler) *Routes {
	return &Routes{
		cartHandler: cartHandler,
	}
}

func (r *Routes) Register(mux *http.ServeMux) {
	mux.HandleFunc("/cart", r.cart)
	mux.HandleFunc("/cart/items", r.items)
	mux.HandleFunc("/cart/items/", r.pathParser)
	mux.HandleFunc("/notifications", r.notifications)
}

func (r *Routes) cart(ww http.ResponseWriter, req *http.Request) {
	// GET /cart
	if req.Method != http.MethodGet {
		methodNotAllowed(ww, http.MethodGet)
		return
	}
	r.cartHandler.ViewCart(ww, req)
}

func (r *Routes) items(ww http.ResponseWriter, req *http.Request) {
	// POST /cart/items
	if req.Method != http.MethodPost {
		methodNotAllowed(ww, http.MethodPost)
		return
	}
	r.cartHandler.AddProduct(ww, req)
}

func (r *Routes) notifications(ww http.ResponseWriter, req *http.Request) {
	// GET /notifications
	if req.Method != http.MethodGet {
		methodNotAllowed(ww, http.MethodGet)
		return
	}
	r.cartHandler.Notifications(ww, req)
}

func (r *Routes) pathParser(ww http.ResponseWriter, req *http.Request) {
	params, err := urlparser.ParseItemPath(req.URL.Path)
	if err != nil {
		http.NotFound(ww, req)
		return
	}

	switch req.Method {
	case http.MethodPut, http.MethodPatch:
		// PUT /cart/items/{productId}
		r.cartHandler.UpdateProductAmount(ww, req, params.ProductId)
	case http.MethodDelete:
		// DELETE /cart/items/{productId}
		r.cartHandler.RemoveProduct(ww, req, params.ProductId)
	default:
		methodNotAllowed(ww, http.MethodPut, http.MethodPatch, http.MethodDelete)
	}
}

func methodNotAllowed(ww http.ResponseWriter, allowed ...string) {
	for _, m := range allowed {
		ww.Header().Add("Allow", m)
	}
	http.Error(ww, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
