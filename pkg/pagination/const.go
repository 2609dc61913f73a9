package pagination

// PageDefaultSize is the default page size if not specified
const PageDefaultSize = 50

// PageMaxSize is the maximum allowed page size
const PageMaxSize = 500

// PageMaxNumber bounds the page number so the offset cannot overflow
const PageMaxNumber = 100000
