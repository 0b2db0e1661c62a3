// Package items implements the catalog item browsing feature.
//
// It is plain CRUD glue over the item store: listing with search, sort and
// pagination, lookup by id, and validated creation.
//
// # Components
//
//   - Service: filtering, sorting, paging and validated creation over store.Store.
//   - Handler: HTTP endpoints; creation is rate limited per client IP.
//   - Loader: Registers the feature with the application.
//
// # HTTP Endpoints
//
//   - GET /api/items?page=&limit=&q=&sortBy=&sortOrder= : Paginated listing.
//   - GET /api/items/:id : Single item.
//   - POST /api/items : Create an item ({name, category?, price?}).
package items
