package backend

import "net/url"

func SoldSearchURL(domain, query string) string {
	return "https://" + domain + "/sch/i.html?_nkw=" + url.QueryEscape(query) + "&LH_Sold=1&LH_Complete=1"
}

func SearchURL(domain, query string) string {
	return "https://" + domain + "/s?k=" + url.QueryEscape(query)
}
