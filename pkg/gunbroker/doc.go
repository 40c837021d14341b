// Package gunbroker is a thin client for the GunBroker marketplace REST API.
//
// A Client holds credentials and the sandbox flag. Each call is prepared with
// Client.New, which validates the path and freezes the production or sandbox
// root, and performed once with one of Get, Delete, Post, Put or
// MultipartPost:
//
//	client := gunbroker.NewClient(gunbroker.Config{DevKey: key})
//	res, err := client.Get(ctx, "/Items", gunbroker.Params{"SellerName": "someone"}, nil)
//	if err != nil {
//	    // *ConfigError, *TransportError or *DecodeError
//	}
//	if !res.OK() {
//	    // non-2xx status, see res.Err()
//	}
//
// The Strict variants (GetStrict, PostStrict, ...) return the non-2xx case as
// a *RequestError instead. Nothing is retried.
package gunbroker
